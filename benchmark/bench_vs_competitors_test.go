package benchmark_test

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"

	"github.com/Zhangliubin/commandParser-1.1-sub000/command"
	"github.com/Zhangliubin/commandParser-1.1-sub000/types"
)

// Benchmark simple CLI with basic flags
// Tests parsing performance with int and bool flags
// Every iteration declares the options from scratch for a fair comparison

func BenchmarkSimpleCLI_Command(b *testing.B) {
	args := []string{"--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p := command.New("bench")
		p.Register(types.Integer.Value(), "--port", "-p").Default(int32(8080)).Description("Server port")
		p.Register(types.Boolean.Value(), "--verbose", "-v").Description("Verbose output")
		_, _ = p.Parse(args...)
	}
}

func BenchmarkSimpleCLI_Cobra(b *testing.B) {
	args := []string{"--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{
			Use: "bench",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().IntP("port", "p", 8080, "Server port")
		rootCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSimpleCLI_Urfave(b *testing.B) {
	args := []string{"bench", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Server port"},
				&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose output"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

// Benchmark list values
// cobra and urfave read one comma-joined token per flag; the command parser
// also accepts the greedy multi-token form

func BenchmarkListValues_Command(b *testing.B) {
	b.Run("Comma", func(b *testing.B) {
		args := []string{"--tags", "cli,parser,go", "--ports", "80,443,8080"}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			p := command.New("bench")
			p.Register(types.String.ArrayComma(), "--tags")
			p.Register(types.Integer.ArrayComma(), "--ports")
			_, _ = p.Parse(args...)
		}
	})
	b.Run("Greedy", func(b *testing.B) {
		args := []string{"--tags", "cli", "parser", "go", "--ports", "80", "443", "8080"}
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			p := command.New("bench")
			p.Register(types.String.Array(), "--tags")
			p.Register(types.Integer.Array(), "--ports")
			_, _ = p.Parse(args...)
		}
	})
}

func BenchmarkListValues_Cobra(b *testing.B) {
	args := []string{"--tags", "cli,parser,go", "--ports", "80,443,8080"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{
			Use: "bench",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().StringSlice("tags", nil, "Tags")
		rootCmd.Flags().IntSlice("ports", nil, "Ports")
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkListValues_Urfave(b *testing.B) {
	args := []string{"bench", "--tags", "cli,parser,go", "--ports", "80,443,8080"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "tags", Usage: "Tags"},
				&cli.IntSliceFlag{Name: "ports", Usage: "Ports"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

// Benchmark many flags
// Tests performance with many flags (realistic CLI tool scenario)

var manyArgs = []string{
	"--flag1", "test1",
	"--flag2", "test2",
	"--flag3", "test3",
	"--port", "9000",
	"--verbose",
	"--debug",
}

func BenchmarkManyFlags_Command(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p := command.New("bench")
		p.Register(types.String.Value(), "--flag1").Default("value1").Description("Flag 1")
		p.Register(types.String.Value(), "--flag2").Default("value2").Description("Flag 2")
		p.Register(types.String.Value(), "--flag3").Default("value3").Description("Flag 3")
		p.Register(types.String.Value(), "--flag4").Default("value4").Description("Flag 4")
		p.Register(types.String.Value(), "--flag5").Default("value5").Description("Flag 5")
		p.Register(types.Integer.Value(), "--port", "-p").Default(int32(8080)).Description("Port")
		p.Register(types.Boolean.Value(), "--verbose", "-v").Description("Verbose")
		p.Register(types.Boolean.Value(), "--debug").Description("Debug")
		p.Register(types.Boolean.Value(), "--quiet").Description("Quiet")
		p.Register(types.Boolean.Value(), "--force").Description("Force")
		_, _ = p.Parse(manyArgs...)
	}
}

func BenchmarkManyFlags_Cobra(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{
			Use: "bench",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().String("flag1", "value1", "Flag 1")
		rootCmd.Flags().String("flag2", "value2", "Flag 2")
		rootCmd.Flags().String("flag3", "value3", "Flag 3")
		rootCmd.Flags().String("flag4", "value4", "Flag 4")
		rootCmd.Flags().String("flag5", "value5", "Flag 5")
		rootCmd.Flags().IntP("port", "p", 8080, "Port")
		rootCmd.Flags().BoolP("verbose", "v", false, "Verbose")
		rootCmd.Flags().Bool("debug", false, "Debug")
		rootCmd.Flags().Bool("quiet", false, "Quiet")
		rootCmd.Flags().Bool("force", false, "Force")
		rootCmd.SetArgs(manyArgs)
		_ = rootCmd.Execute()
	}
}

func BenchmarkManyFlags_Urfave(b *testing.B) {
	args := append([]string{"bench"}, manyArgs...)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "flag1", Value: "value1", Usage: "Flag 1"},
				&cli.StringFlag{Name: "flag2", Value: "value2", Usage: "Flag 2"},
				&cli.StringFlag{Name: "flag3", Value: "value3", Usage: "Flag 3"},
				&cli.StringFlag{Name: "flag4", Value: "value4", Usage: "Flag 4"},
				&cli.StringFlag{Name: "flag5", Value: "value5", Usage: "Flag 5"},
				&cli.IntFlag{Name: "port", Value: 8080, Usage: "Port"},
				&cli.BoolFlag{Name: "verbose", Usage: "Verbose"},
				&cli.BoolFlag{Name: "debug", Usage: "Debug"},
				&cli.BoolFlag{Name: "quiet", Usage: "Quiet"},
				&cli.BoolFlag{Name: "force", Usage: "Force"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		_ = app.Run(args)
	}
}

// Benchmark error path
// An unknown option with a near miss; every parser reports it with a suggestion or usage

func BenchmarkUnknownFlag_Command(b *testing.B) {
	args := []string{"--prot", "9000"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p := command.New("bench")
		p.Register(types.Integer.Value(), "--port")
		if _, err := p.Parse(args...); err == nil {
			b.Fatal("expected error")
		}
	}
}

func BenchmarkUnknownFlag_Cobra(b *testing.B) {
	args := []string{"--prot", "9000"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{
			Use:           "bench",
			SilenceErrors: true,
			SilenceUsage:  true,
			Run:           func(_ *cobra.Command, _ []string) {},
		}
		rootCmd.Flags().Int("port", 8080, "Port")
		rootCmd.SetArgs(args)
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)
		if err := rootCmd.Execute(); err == nil {
			b.Fatal("expected error")
		}
	}
}

func BenchmarkUnknownFlag_Urfave(b *testing.B) {
	args := []string{"bench", "--prot", "9000"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name:      "bench",
			Writer:    io.Discard,
			ErrWriter: io.Discard,
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "port", Value: 8080, Usage: "Port"},
			},
			Action: func(_ *cli.Context) error { return nil },
		}
		if err := app.Run(args); err == nil {
			b.Fatal("expected error")
		}
	}
}
