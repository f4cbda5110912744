package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var noReload bool

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the API server in development mode",
		Long: "Runs ./cmd/server with APP_ENV=development. Uses air for hot reload when it\n" +
			"is installed, otherwise (or with --no-reload) a plain go run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := devEnv()
			if noReload {
				return goRun(cmd, env)
			}

			airPath, err := exec.LookPath("air")
			if err != nil {
				fmt.Println("air not found, running without hot reload")
				fmt.Println("  go install github.com/air-verse/air@latest")
				return goRun(cmd, env)
			}
			return syscall.Exec(airPath, airArgs(), env)
		},
	}

	cmd.Flags().BoolVar(&noReload, "no-reload", false, "run once with go run instead of air")
	return cmd
}

func devEnv() []string {
	env := os.Environ()
	if os.Getenv("APP_ENV") == "" {
		env = append(env, "APP_ENV=development")
	}
	return env
}

func airArgs() []string {
	return []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_test.go$",
		"-build.include_ext", "go,sql",
		"-build.send_interrupt", "true",
	}
}

func goRun(cmd *cobra.Command, env []string) error {
	run := exec.CommandContext(cmd.Context(), "go", "run", "./cmd/server")
	run.Env = env
	run.Stdout = os.Stdout
	run.Stderr = os.Stderr
	run.Cancel = func() error { return run.Process.Signal(os.Interrupt) }
	return run.Run()
}
