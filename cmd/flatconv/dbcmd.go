package main

import (
	"fmt"

	"github.com/NethermindEth/flatconv/adapters/record2doc"
	"github.com/NethermindEth/flatconv/db/pebble"
	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/store"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

const (
	keyF    = "key"
	verifyF = "verify"
)

func DBCmd(a *app) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database related operations",
		Long:  `This command stores graphs in and reads them from the database at --db-path.`,
	}

	dbCmd.AddCommand(DBPutCmd(a), DBGetCmd(a), DBListCmd(a), DBDeleteCmd(a))
	return dbCmd
}

func DBPutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put FILE",
		Short: "Store a graph",
		Long: `This subcommand stores the graph in FILE, a FlatBuffer or a graph document, and prints
the key it was stored under.`,
		Args: cobra.ExactArgs(1),
		RunE: a.dbPut,
	}
	cmd.Flags().String(keyF, "", "Key to store the graph under, a new KSUID if unset.")
	return cmd
}

func DBGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a stored graph as a document",
		Args:  cobra.ExactArgs(1),
		RunE:  a.dbGet,
	}
}

func DBListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored graphs",
		Long: `This subcommand lists the stored graphs from their summaries. With --verify every graph
is also decoded, and the first one that fails to decode is reported.`,
		Args: cobra.NoArgs,
		RunE: a.dbList,
	}
	cmd.Flags().Bool(verifyF, false, "Decode every stored graph before listing.")
	return cmd
}

func DBDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE:  a.dbDelete,
	}
}

func (a *app) dbPut(cmd *cobra.Command, args []string) error {
	key, err := cmd.Flags().GetString(keyF)
	if err != nil {
		return err
	}
	if key == "" {
		key = ksuid.New().String()
	}

	g, err := readGraph(args[0], a.cfg.Format)
	if err != nil {
		return err
	}

	return a.withStore(func(s *store.Store) error {
		if err := s.Put(key, g); err != nil {
			return err
		}
		a.graphs.WithLabelValues("db put").Inc()
		_, err := fmt.Fprintln(cmd.OutOrStdout(), key)
		return err
	})
}

func (a *app) dbGet(cmd *cobra.Command, args []string) error {
	return a.withStore(func(s *store.Store) error {
		g, err := s.Get(args[0])
		if err != nil {
			return err
		}
		a.graphs.WithLabelValues("db get").Inc()

		doc, err := document.Marshal(a.cfg.Format, record2doc.AdaptGraph(&g))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	})
}

func (a *app) dbList(cmd *cobra.Command, _ []string) error {
	verify, err := cmd.Flags().GetBool(verifyF)
	if err != nil {
		return err
	}

	return a.withStore(func(s *store.Store) error {
		names, err := s.Names()
		if err != nil {
			return err
		}
		if verify {
			if _, err = s.GetMany(cmd.Context(), names); err != nil {
				return err
			}
		}

		var totalSize utils.DataSize
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Key", "Graph", "Nodes", "Size", "Schema"})
		for _, name := range names {
			info, err := s.Info(name)
			if err != nil {
				return err
			}
			size := utils.DataSize(info.Size)
			totalSize += size
			table.Append([]string{name, info.Graph, fmt.Sprint(info.Nodes), size.String(), info.Schema})
		}
		table.SetFooter([]string{"Total", fmt.Sprint(len(names)), "", totalSize.String(), ""})
		table.Render()
		return nil
	})
}

func (a *app) dbDelete(cmd *cobra.Command, args []string) error {
	return a.withStore(func(s *store.Store) error {
		if err := s.Delete(args[0]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return err
	})
}

// withStore opens the database at --db-path for the duration of fn.
func (a *app) withStore(fn func(*store.Store) error) (err error) {
	if a.cfg.DBPath == "" {
		return errors.Errorf("--%s is required", dbPathF)
	}

	database, err := pebble.New(a.cfg.DBPath, pebble.WithLogger(a.log))
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		err = utils.RunAndWrapOnError(database.Close, err)
	}()

	s, err := store.Open(database, a.log, a.factory, store.WithWorkers(a.cfg.Workers))
	if err != nil {
		return err
	}
	return fn(s)
}
