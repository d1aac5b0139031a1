//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary = "bin/employee-directory"
	dbFile = "directory.db"
)

// Dbup runs dbmate to apply db migrations
func Dbup() error {
	if _, err := exec.LookPath("dbmate"); err != nil {
		fmt.Println(">> dbmate not found; install with:")
		fmt.Println("   go install github.com/amacneil/dbmate/v2@latest")
		return err
	}
	fmt.Println(">> dbmate up")
	return sh.Run("dbmate", "up")
}

// Build tidies deps, then compiles to ./bin/employee-directory.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	return sh.Run("go", "build", "-o", binary, "./cmd/server")
}

// Run builds then executes the binary.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server...")
	return sh.RunV("./"+binary, "serve")
}

// Dev starts the server via go run with APP_ENV=development.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/server ...")
	cmd := exec.Command("go", "run", "./cmd/server", "serve")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "APP_ENV=development")
	return cmd.Run()
}

// Employees prints the directory the server would show.
func Employees() error {
	return sh.RunV("go", "run", "./cmd/server", "employees")
}

// Export writes employees.pdf and employees.xlsx to the working directory.
func Export() error {
	for _, f := range []string{"pdf", "xlsx"} {
		if err := sh.RunV("go", "run", "./cmd/server", "export", "--format", f); err != nil {
			return err
		}
	}
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunWith(map[string]string{"APP_ENV": "test"}, "go", "test", "./...")
}

// Cover runs the tests with the race detector and prints coverage.
func Cover() error {
	fmt.Println(">> Running tests with -race -cover...")
	return sh.RunWith(map[string]string{"APP_ENV": "test"}, "go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts, exports and the local SQLite DB.
func Clean() error {
	fmt.Println(">> Cleaning...")
	for _, p := range []string{"bin", dbFile, "employees.pdf", "employees.xlsx"} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}

// Install builds and installs the binary to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	return sh.Run("go", "install", "./cmd/server")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
