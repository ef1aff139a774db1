// Command vertexdb is the CLI entry point: a cobra command tree exposing
// serve, init, and demo subcommands over the storage engine and gateway,
// following cmd/nornicdb/main.go's root-command-plus-subcommands shape
// (simplified: no Bolt/embedding/decay-specific flags, since this spec's
// scope is the graph engine and its HTTP gateway).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertexdb/vertexdb/internal/config"
	"github.com/vertexdb/vertexdb/internal/gateway"
	"github.com/vertexdb/vertexdb/internal/graph"
	"github.com/vertexdb/vertexdb/internal/storage"
	"github.com/vertexdb/vertexdb/internal/traversal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var listenAddr string
	var inMemory bool

	root := &cobra.Command{
		Use:   "vertexdb",
		Short: "Embedded labeled property-graph database with a step-wise traversal engine",
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for graph data (default from VERTEXDB_DATA_DIR or ./data)")
	root.PersistentFlags().StringVar(&listenAddr, "listen-addr", "", "gateway listen address (default from VERTEXDB_LISTEN_ADDR or :8080)")
	root.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "run with no on-disk storage")

	loadConfig := func() config.Config {
		cfg := config.LoadFromEnv()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		if inMemory {
			cfg.InMemory = true
		}
		return cfg
	}

	root.AddCommand(newInitCmd(loadConfig))
	root.AddCommand(newServeCmd(loadConfig))
	root.AddCommand(newDemoCmd(loadConfig))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vertexdb version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("vertexdb dev")
			return nil
		},
	}
}

func newInitCmd(loadConfig func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty graph at the configured data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			engine, err := openEngine(cfg)
			if err != nil {
				return err
			}
			return engine.Close()
		},
	}
}

func newServeCmd(loadConfig func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Open the graph and serve it over the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			engine, err := openEngine(cfg)
			if err != nil {
				return err
			}
			defer engine.Close()

			srv := gateway.NewServer(cfg.ListenAddr, routesFor(engine), log.Default())
			log.Printf("vertexdb: listening on %s (data dir %s)", cfg.ListenAddr, cfg.DataDir)
			return srv.ListenAndServe()
		},
	}
}

func newDemoCmd(loadConfig func() config.Config) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a small demo graph of person nodes connected by knows edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			engine, err := openEngine(cfg)
			if err != nil {
				return err
			}
			defer engine.Close()
			return seedDemoGraph(engine, size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 10, "number of person nodes to create")
	return cmd
}

func openEngine(cfg config.Config) (*storage.Engine, error) {
	if cfg.InMemory {
		return storage.OpenInMemory()
	}
	return storage.Open(cfg.DataDir)
}

// seedDemoGraph creates size "person" nodes and links each to the next
// with a "knows" edge, following
// original_source/helix-container/src/main.rs's create_test_graph (here
// a fixed ring instead of random edges-per-node, since the CLI has no
// equivalent of the original's route-registration harness to exercise).
func seedDemoGraph(engine *storage.Engine, size int) error {
	if size <= 0 {
		return fmt.Errorf("demo: size must be positive")
	}
	rw := engine.BeginWrite()
	b := traversal.NewWriteBuilder(rw)

	ids := make([]graph.NodeID, 0, size)
	for i := 0; i < size; i++ {
		b.AddV("person", map[string]graph.Value{
			"name": graph.NewString(fmt.Sprintf("person-%d", i)),
		})
		nodes := b.Current()
		if len(nodes) != 1 || nodes[0].Kind != traversal.SingleNode {
			return b.Err()
		}
		ids = append(ids, nodes[0].Node.ID)
	}
	for i := 0; i < size; i++ {
		next := (i + 1) % size
		if next == i {
			continue
		}
		b.AddE("knows", ids[i], ids[next], nil)
	}
	return b.Execute()
}
