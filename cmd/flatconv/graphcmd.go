package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NethermindEth/flatconv/adapters/doc2record"
	"github.com/NethermindEth/flatconv/adapters/record2doc"
	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

const (
	inF  = "in"
	outF = "out"
)

// Files with these extensions hold encoded graphs, anything else is read as a document.
var bufferExts = []string{".fb", ".bin"}

func EncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a graph document into a FlatBuffer",
		Long: `This command reads a yaml, json or cbor graph document and writes it as a FlatBuffer.
The document format is taken from the file extension, --format is used when it has none.`,
		Args: cobra.NoArgs,
		RunE: a.encode,
	}
	cmd.Flags().String(inF, "", "Graph document to encode.")
	cmd.Flags().String(outF, "", "Destination of the FlatBuffer, standard output if unset.")
	if err := cmd.MarkFlagRequired(inF); err != nil {
		panic(err)
	}
	return cmd
}

func DecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode FILE...",
		Short: "Print FlatBuffer graphs as documents",
		Long: `This command decodes every FILE concurrently and prints the graphs, in argument order,
in the document format chosen with --format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.decode,
	}
}

func InspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarise the nodes of a graph",
		Args:  cobra.ExactArgs(1),
		RunE:  a.inspect,
	}
}

func (a *app) encode(cmd *cobra.Command, _ []string) error {
	in, err := cmd.Flags().GetString(inF)
	if err != nil {
		return err
	}
	out, err := cmd.Flags().GetString(outF)
	if err != nil {
		return err
	}

	doc, err := readDocument(in, a.cfg.Format)
	if err != nil {
		return err
	}
	g, err := doc2record.AdaptGraph(doc)
	if err != nil {
		return errors.Wrapf(err, "adapt %s", in)
	}
	buf := g.Encode()
	a.graphs.WithLabelValues("encode").Inc()

	if out == "" {
		_, err = cmd.OutOrStdout().Write(buf)
		return err
	}
	if err = os.WriteFile(out, buf, 0o600); err != nil {
		return err
	}
	a.log.Infow("Encoded graph", "name", g.Name, "out", out, "size", utils.DataSize(len(buf)))
	return nil
}

func (a *app) decode(cmd *cobra.Command, args []string) error {
	docs := make([][]byte, len(args))

	workerPool := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(a.cfg.Workers)
	for i, path := range args {
		workerPool.Go(func() error {
			g, err := readGraph(path, a.cfg.Format)
			if err != nil {
				return err
			}
			docs[i], err = document.Marshal(a.cfg.Format, record2doc.AdaptGraph(g))
			if err != nil {
				return errors.Wrapf(err, "marshal %s", path)
			}
			a.graphs.WithLabelValues("decode").Inc()
			return nil
		})
	}
	if err := workerPool.Wait(); err != nil {
		return err
	}

	return writeDocuments(cmd.OutOrStdout(), a.cfg.Format, docs)
}

// writeDocuments writes YAML documents as one stream, JSON documents one after the other
// and CBOR documents as a CBOR sequence.
func writeDocuments(w io.Writer, f document.Format, docs [][]byte) error {
	for i, doc := range docs {
		if f == document.YAML && i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if _, err := w.Write(doc); err != nil {
			return err
		}
		if f == document.JSON {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) inspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	g, err := record.DecodeGraph(buf)
	if err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	a.graphs.WithLabelValues("inspect").Inc()

	root := "none"
	if !g.Root.IsNil() {
		root = fmt.Sprint(g.Root.Ptr().ID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Graph %q: %s, %d weights, %d labels, root %s\n",
		g.Name, utils.DataSize(len(buf)), len(g.Weights), g.Labels.Size(), root)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Name", "Tags", "Attrs", "Path", "Children"})
	var rows [][]string
	if g.Nodes != nil {
		for id, n := range g.Nodes.All() {
			rows = append(rows, []string{
				fmt.Sprint(id),
				n.Name,
				fmt.Sprint(n.Tags.Size()),
				fmt.Sprint(n.Attrs.Size()),
				fmt.Sprint(len(n.Path)),
				fmt.Sprint(len(n.Children)),
			})
		}
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"Total", fmt.Sprint(len(rows)), "", "", "", ""})
	table.Render()
	return nil
}

// readGraph reads an encoded graph, or a document when path does not name a buffer.
func readGraph(path string, fallback document.Format) (*record.Graph, error) {
	if !isBuffer(path) {
		doc, err := readDocument(path, fallback)
		if err != nil {
			return nil, err
		}
		g, err := doc2record.AdaptGraph(doc)
		return g, errors.Wrapf(err, "adapt %s", path)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := record.DecodeGraph(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return &g, nil
}

func readDocument(path string, fallback document.Format) (*document.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return document.Unmarshal(formatOf(path, fallback), data)
}

func formatOf(path string, fallback document.Format) document.Format {
	var f document.Format
	if err := f.Set(strings.TrimPrefix(filepath.Ext(path), ".")); err != nil {
		return fallback
	}
	return f
}

func isBuffer(path string) bool {
	ext := filepath.Ext(path)
	for _, bufferExt := range bufferExts {
		if strings.EqualFold(ext, bufferExt) {
			return true
		}
	}
	return false
}
