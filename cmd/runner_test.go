package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	tu "github.com/desertthunder/inventory/internal/testing"
	"github.com/urfave/cli/v3"
)

// runCommand runs args against a fresh command tree built from runner.
func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	root := &cli.Command{Name: "inventory", Commands: runner.register()}
	return root.Run(context.Background(), append([]string{"inventory"}, args...))
}

// newItemsRunner returns a runner over an in-memory repository seeded with items.
func newItemsRunner(t *testing.T, items ...models.Item) (*Runner, *tu.MemoryStore, *bytes.Buffer) {
	t.Helper()
	repo, store := tu.NewRepository(t, items...)
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:     shared.DefaultConfig(),
		Logger:     shared.NewLogger(io.Discard),
		Output:     output,
		Repository: repo,
	})
	t.Cleanup(runner.Close)
	return runner, store, output
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			repo, _ := tu.NewRepository(t)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				Repository: repo,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.repo != repo {
				t.Error("expected repository to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("loadConfig", func(t *testing.T) {
		t.Run("falls back to defaults when the file is missing", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
				Logger:     shared.NewLogger(io.Discard),
			})

			config, err := runner.loadConfig(nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Inventory.Currency != "USD" {
				t.Errorf("expected default currency, got %q", config.Inventory.Currency)
			}
		})

		t.Run("reads the configured file once", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := "[inventory]\nlocale = \"de-DE\"\ncurrency = \"EUR\"\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{ConfigPath: path, Logger: shared.NewLogger(io.Discard)})
			config, err := runner.loadConfig(nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Inventory.Currency != "EUR" {
				t.Errorf("expected EUR, got %q", config.Inventory.Currency)
			}

			again, _ := runner.loadConfig(nil)
			if again != config {
				t.Error("expected cached config on second load")
			}
		})

		t.Run("rejects an unknown log level", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{ConfigPath: path, Logger: shared.NewLogger(io.Discard)})
			if _, err := runner.loadConfig(nil); err == nil {
				t.Error("expected error for invalid log level")
			}
		})
	})

	t.Run("Close", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard)})
		calls := []int{}
		runner.closers = append(runner.closers, func() { calls = append(calls, 1) }, func() { calls = append(calls, 2) })

		runner.Close()
		runner.Close()

		if len(calls) != 2 || calls[0] != 2 || calls[1] != 1 {
			t.Errorf("expected closers to run once in reverse order, got %v", calls)
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

}

func TestItemsCommands(t *testing.T) {
	widget := models.Item{ID: 1, Name: "Widget", Price: 2.5, Quantity: 3}
	empty := models.Item{ID: 2, Name: "Anvil", Price: 300, Quantity: 0}

	t.Run("list", func(t *testing.T) {
		t.Run("prints a table ordered by name", func(t *testing.T) {
			runner, _, output := newItemsRunner(t, widget, empty)

			if err := runCommand(t, runner, "items", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, "NAME") {
				t.Errorf("expected header, got %q", result)
			}
			if !strings.Contains(result, "$2.50") || !strings.Contains(result, "$300.00") {
				t.Errorf("expected formatted prices, got %q", result)
			}
			if strings.Index(result, "Anvil") > strings.Index(result, "Widget") {
				t.Errorf("expected Anvil before Widget, got %q", result)
			}
		})

		t.Run("prints the empty state", func(t *testing.T) {
			runner, _, output := newItemsRunner(t)

			if err := runCommand(t, runner, "items", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "No items in the inventory.") {
				t.Errorf("expected empty state, got %q", output.String())
			}
		})

		t.Run("prints JSON", func(t *testing.T) {
			runner, _, output := newItemsRunner(t, widget, empty)

			if err := runCommand(t, runner, "items", "list", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var items []models.Item
			if err := json.Unmarshal(output.Bytes(), &items); err != nil {
				t.Fatalf("expected valid JSON, got %v", err)
			}
			if len(items) != 2 || items[0].Name != "Anvil" {
				t.Errorf("unexpected items: %+v", items)
			}
		})
	})

	t.Run("show", func(t *testing.T) {
		t.Run("prints one item", func(t *testing.T) {
			runner, _, output := newItemsRunner(t, widget)

			if err := runCommand(t, runner, "items", "show", "--id", "1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Item:           Widget") {
				t.Errorf("expected item detail, got %q", output.String())
			}
		})

		t.Run("marks an empty item out of stock", func(t *testing.T) {
			runner, _, output := newItemsRunner(t, empty)

			if err := runCommand(t, runner, "items", "show", "--id", "2"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Out of stock") {
				t.Errorf("expected out of stock status, got %q", output.String())
			}
		})

		t.Run("reports a missing item", func(t *testing.T) {
			runner, _, _ := newItemsRunner(t)

			err := runCommand(t, runner, "items", "show", "--id", "42")
			if !errors.Is(err, shared.ErrItemNotFound) {
				t.Errorf("expected ErrItemNotFound, got %v", err)
			}
		})

		t.Run("rejects a non-positive id", func(t *testing.T) {
			runner, _, _ := newItemsRunner(t)

			err := runCommand(t, runner, "items", "show", "--id", "0")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("add", func(t *testing.T) {
		t.Run("inserts a valid item", func(t *testing.T) {
			runner, store, output := newItemsRunner(t, widget)

			err := runCommand(t, runner, "items", "add", "--name", "Gadget", "--price", "9.99", "--quantity", "4")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Added Gadget (id 2)") {
				t.Errorf("expected confirmation, got %q", output.String())
			}

			item, err := store.Get(context.Background(), 2)
			if err != nil {
				t.Fatalf("expected stored item, got %v", err)
			}
			if item.Price != 9.99 || item.Quantity != 4 {
				t.Errorf("unexpected item: %+v", item)
			}
		})

		t.Run("rejects blank fields", func(t *testing.T) {
			runner, store, _ := newItemsRunner(t)

			err := runCommand(t, runner, "items", "add", "--name", "   ", "--price", "1", "--quantity", "1")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}

			items, _ := store.List(context.Background())
			if len(items) != 0 {
				t.Errorf("expected nothing stored, got %+v", items)
			}
		})

		t.Run("requires every flag", func(t *testing.T) {
			runner, _, _ := newItemsRunner(t)

			if err := runCommand(t, runner, "items", "add", "--name", "Gadget"); err == nil {
				t.Error("expected error for missing flags")
			}
		})
	})

	t.Run("edit", func(t *testing.T) {
		t.Run("changes only the given fields", func(t *testing.T) {
			runner, store, _ := newItemsRunner(t, widget)

			if err := runCommand(t, runner, "items", "edit", "--id", "1", "--price", "4"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			item, _ := store.Get(context.Background(), 1)
			if item.Name != "Widget" || item.Price != 4 || item.Quantity != 3 {
				t.Errorf("unexpected item: %+v", item)
			}
		})

		t.Run("requires at least one field", func(t *testing.T) {
			runner, _, _ := newItemsRunner(t, widget)

			err := runCommand(t, runner, "items", "edit", "--id", "1")
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})

		t.Run("rejects a blank name", func(t *testing.T) {
			runner, store, _ := newItemsRunner(t, widget)

			err := runCommand(t, runner, "items", "edit", "--id", "1", "--name", " ")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}

			item, _ := store.Get(context.Background(), 1)
			if item.Name != "Widget" {
				t.Errorf("expected name to be unchanged, got %q", item.Name)
			}
		})

		t.Run("reports a missing item", func(t *testing.T) {
			runner, _, _ := newItemsRunner(t)

			err := runCommand(t, runner, "items", "edit", "--id", "9", "--name", "Other")
			if !errors.Is(err, shared.ErrItemNotFound) {
				t.Errorf("expected ErrItemNotFound, got %v", err)
			}
		})
	})

	t.Run("sell", func(t *testing.T) {
		t.Run("reduces quantity by one", func(t *testing.T) {
			runner, store, output := newItemsRunner(t, widget)

			if err := runCommand(t, runner, "items", "sell", "--id", "1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "In Stock: 2") {
				t.Errorf("expected remaining stock, got %q", output.String())
			}

			item, _ := store.Get(context.Background(), 1)
			if item.Quantity != 2 {
				t.Errorf("expected quantity 2, got %d", item.Quantity)
			}
		})

		t.Run("refuses when out of stock", func(t *testing.T) {
			runner, store, _ := newItemsRunner(t, empty)

			err := runCommand(t, runner, "items", "sell", "--id", "2")
			if !errors.Is(err, shared.ErrOutOfStock) {
				t.Errorf("expected ErrOutOfStock, got %v", err)
			}

			item, _ := store.Get(context.Background(), 2)
			if item.Quantity != 0 {
				t.Errorf("expected quantity to stay 0, got %d", item.Quantity)
			}
		})
	})

	t.Run("delete", func(t *testing.T) {
		t.Run("removes the item", func(t *testing.T) {
			runner, store, _ := newItemsRunner(t, widget)

			if err := runCommand(t, runner, "items", "delete", "--id", "1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, err := store.Get(context.Background(), 1); !errors.Is(err, shared.ErrItemNotFound) {
				t.Errorf("expected item to be gone, got %v", err)
			}
		})

		t.Run("reports a missing item", func(t *testing.T) {
			runner, _, _ := newItemsRunner(t)

			err := runCommand(t, runner, "items", "rm", "--id", "1")
			if !errors.Is(err, shared.ErrItemNotFound) {
				t.Errorf("expected ErrItemNotFound, got %v", err)
			}
		})
	})

	t.Run("store errors surface", func(t *testing.T) {
		runner, store, _ := newItemsRunner(t, widget)
		store.SetErr(shared.ErrDatabase)

		err := runCommand(t, runner, "items", "list")
		if !errors.Is(err, shared.ErrDatabase) {
			t.Errorf("expected ErrDatabase, got %v", err)
		}
	})
}

func TestItemsWithDatabase(t *testing.T) {
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "inventory.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard), Output: output})
	t.Cleanup(runner.Close)

	if err := runCommand(t, runner, "items", "add", "-n", "Bolt", "-p", "0.25", "-q", "100"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := runCommand(t, runner, "items", "sell", "--id", "1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output.Reset()
	if err := runCommand(t, runner, "items", "list", "--json"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var items []models.Item
	if err := json.Unmarshal(output.Bytes(), &items); err != nil {
		t.Fatalf("expected valid JSON, got %v", err)
	}
	if len(items) != 1 || items[0].Name != "Bolt" || items[0].Quantity != 99 {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestSetupCommands(t *testing.T) {
	tmpDir := t.TempDir()
	wd := tu.MustGetwd(t)
	tu.MustChdir(t, tmpDir)
	t.Cleanup(func() { tu.MustChdir(t, wd) })

	configPath := filepath.Join(tmpDir, "config.toml")

	t.Run("database creates config and schema", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: output})

		if err := runCommand(t, runner, "setup", "database", "-c", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, configPath)
		tu.AssertFileExists(t, filepath.Join(tmpDir, "inventory.db"))

		if !strings.Contains(tu.MustReadFile(t, configPath), "[inventory]") {
			t.Error("expected config to be written from the template")
		}
		if !strings.Contains(output.String(), "schema version 1") {
			t.Errorf("expected schema version, got %q", output.String())
		}
	})

	t.Run("rollback reverts the latest migration", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: output})

		if err := runCommand(t, runner, "setup", "rollback", "-c", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Rolled back migration 0001") {
			t.Errorf("expected rollback message, got %q", output.String())
		}

		output.Reset()
		if err := runCommand(t, runner, "setup", "rollback", "-c", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Nothing to roll back") {
			t.Errorf("expected nothing to roll back, got %q", output.String())
		}
	})
}
