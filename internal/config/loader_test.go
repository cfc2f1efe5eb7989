package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/loanscope/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		// Keep a stray .env in the test directory from leaking in.
		_ = os.Setenv(config.EnvDotenvPath, writeTemp(t, "empty-*.env", ""))
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.ScoringTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.StubLatencyMinMS, convey.ShouldEqual, 80)
				convey.So(cfg.StubLatencyMaxMS, convey.ShouldEqual, 150)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LOANSCOPE_ADDR", ":8080")
			_ = os.Setenv("LOANSCOPE_SCORING_URL", "http://scorer:5000/predict_proba")
			_ = os.Setenv("LOANSCOPE_SCORING_TIMEOUT_MS", "1500")
			_ = os.Setenv("LOANSCOPE_BATCH_CONCURRENCY", "16")
			_ = os.Setenv("LOANSCOPE_STUB_LATENCY_MIN_MS", "50")
			_ = os.Setenv("LOANSCOPE_STUB_LATENCY_MAX_MS", "100")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ScoringURL, convey.ShouldEqual, "http://scorer:5000/predict_proba")
				convey.So(cfg.ScoringTimeoutMS, convey.ShouldEqual, 1500)
				convey.So(cfg.BatchConcurrency, convey.ShouldEqual, 16)
				convey.So(cfg.StubLatencyMinMS, convey.ShouldEqual, 50)
				convey.So(cfg.StubLatencyMaxMS, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# scoring service
addr: ":9091"
scoring_url: "http://yaml:5000/predict_proba"  # inline comment
batch_concurrency: 24
log_format: json
`
			_ = os.Setenv(config.EnvConfigPath, writeTemp(t, "loanscope-*.yaml", yamlContent))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep defaults elsewhere", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9091")
				convey.So(cfg.ScoringURL, convey.ShouldEqual, "http://yaml:5000/predict_proba")
				convey.So(cfg.BatchConcurrency, convey.ShouldEqual, 24)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ScoringTimeoutMS, convey.ShouldEqual, 5000)
			})

			convey.Convey("And env vars override the file", func() {
				_ = os.Setenv("LOANSCOPE_ADDR", ":8080")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BatchConcurrency, convey.ShouldEqual, 24)
			})
		})

		convey.Convey("When loading config with a .env file", func() {
			_ = os.Setenv(config.EnvDotenvPath, writeTemp(t, "loanscope-*.env",
				"LOANSCOPE_SCORING_URL=http://dotenv:5000/predict_proba\nLOANSCOPE_ADDR=:7000\n"))
			_ = os.Setenv("LOANSCOPE_ADDR", ":8080")
			defer func() {
				_ = os.Unsetenv("LOANSCOPE_SCORING_URL")
			}()

			cfg, err := config.Load(ctx)

			convey.Convey("Then .env fills unset vars and process env wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ScoringURL, convey.ShouldEqual, "http://dotenv:5000/predict_proba")
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			})
		})

		convey.Convey("When the named .env file does not exist", func() {
			_ = os.Setenv(config.EnvDotenvPath, filepath.Join(t.TempDir(), "missing.env"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv(config.EnvConfigPath, writeTemp(t, "bad-*.yaml", `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv(config.EnvConfigPath, "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("LOANSCOPE_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("LOANSCOPE_SCORING_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		config.EnvConfigPath,
		config.EnvDotenvPath,
		"LOANSCOPE_ADDR",
		"LOANSCOPE_SCORING_URL",
		"LOANSCOPE_SCORING_TIMEOUT_MS",
		"LOANSCOPE_BATCH_CONCURRENCY",
		"LOANSCOPE_STUB_LATENCY_MIN_MS",
		"LOANSCOPE_STUB_LATENCY_MAX_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}
