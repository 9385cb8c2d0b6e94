package store

import (
	"context"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/flatconv/db"
	"github.com/NethermindEth/flatconv/db/typed"
	"github.com/NethermindEth/flatconv/db/typed/key"
	"github.com/NethermindEth/flatconv/db/typed/value"
	"github.com/NethermindEth/flatconv/metrics"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

var ErrIncompatibleSchema = errors.New("incompatible schema version")

const schemaVersionKey = "schema_version"

var (
	graphs    = typed.NewBucket[string, record.Graph](db.Graphs, key.String, value.Flatbuf[record.Graph, record.GraphCodec]())
	rawGraphs = typed.NewBucket[string, []byte](db.Graphs, key.String, value.Bytes)
	infos     = typed.NewBucket[string, Info](db.GraphInfos, key.String, value.Cbor[Info]())
	metadata  = typed.NewBucket[string, string](db.Metadata, key.String, value.String)
)

// Info summarises a stored graph so it can be listed without decoding it.
type Info struct {
	Graph  string `cbor:"graph"`
	Nodes  int    `cbor:"nodes"`
	Size   int    `cbor:"size"`
	Schema string `cbor:"schema"`
}

// Store keeps encoded graphs by name.
type Store struct {
	db      db.KeyValueStore
	log     utils.SimpleLogger
	metrics *storeMetrics
	workers int
}

type Option func(*Store)

// WithWorkers bounds the number of graphs GetMany decodes at once.
func WithWorkers(n int) Option {
	return func(s *Store) {
		s.workers = max(n, 1)
	}
}

// Open checks that the schema version recorded in database is readable by this build and
// records the current version. Stores written by a different major version are refused.
func Open(database db.KeyValueStore, log utils.SimpleLogger, factory metrics.Factory, opts ...Option) (*Store, error) {
	s := &Store{
		db:      database,
		log:     log,
		metrics: newStoreMetrics(factory),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.checkSchema(); err != nil {
		return nil, err
	}
	names, err := s.Names()
	if err != nil {
		return nil, err
	}
	s.metrics.graphs.Set(float64(len(names)))
	return s, nil
}

func (s *Store) checkSchema() error {
	current := semver.MustParse(record.SchemaVersion)

	stored, err := metadata.Get(s.db, schemaVersionKey)
	if errors.Is(err, db.ErrKeyNotFound) {
		s.log.Debugw("Initialising store", "schema", current)
		return s.writeSchema(current)
	} else if err != nil {
		return errors.Wrap(err, "read schema version")
	}

	version, err := semver.NewVersion(stored)
	if err != nil {
		return errors.Wrapf(err, "parse stored schema version %q", stored)
	}

	switch {
	case version.Major() != current.Major():
		return errors.Wrapf(ErrIncompatibleSchema, "store has %s, supported %s", version, current)
	case version.LessThan(current):
		s.log.Infow("Upgrading store schema", "from", version, "to", current)
		return s.writeSchema(current)
	case version.GreaterThan(current):
		// readers skip slots they do not know
		s.log.Warnw("Store was written by a newer schema, unknown fields will be dropped on rewrite",
			"store", version, "supported", current)
	}
	return nil
}

func (s *Store) writeSchema(v *semver.Version) error {
	str := v.String()
	return errors.Wrap(metadata.Put(s.db, schemaVersionKey, &str), "write schema version")
}

// SchemaVersion returns the schema version recorded in the store.
func (s *Store) SchemaVersion() (*semver.Version, error) {
	stored, err := metadata.Get(s.db, schemaVersionKey)
	if err != nil {
		return nil, err
	}
	return semver.NewVersion(stored)
}

func (s *Store) Put(name string, g *record.Graph) (err error) {
	defer s.metrics.observe(opPut)(&err)

	exists, err := rawGraphs.Has(s.db, name)
	if err != nil {
		return errors.Wrapf(err, "put graph %q", name)
	}

	buf := g.Encode()
	if err = rawGraphs.Put(s.db, name, &buf); err != nil {
		return errors.Wrapf(err, "put graph %q", name)
	}
	info := Info{
		Graph:  g.Name,
		Nodes:  g.Nodes.Size(),
		Size:   len(buf),
		Schema: record.SchemaVersion,
	}
	if err = infos.Put(s.db, name, &info); err != nil {
		return errors.Wrapf(err, "put graph info %q", name)
	}

	if !exists {
		s.metrics.graphs.Inc()
	}
	s.metrics.graphBytes.Observe(float64(len(buf)))
	s.log.Debugw("Stored graph", "name", name, "nodes", info.Nodes, "size", utils.DataSize(info.Size))
	return nil
}

// Get returns the graph stored under name, db.ErrKeyNotFound if there is none.
func (s *Store) Get(name string) (g record.Graph, err error) {
	defer s.metrics.observe(opGet)(&err)

	g, err = graphs.Get(s.db, name)
	if err != nil {
		return record.Graph{}, errors.Wrapf(err, "get graph %q", name)
	}
	return g, nil
}

// Info returns the summary written with the graph stored under name.
func (s *Store) Info(name string) (Info, error) {
	info, err := infos.Get(s.db, name)
	if err != nil {
		return Info{}, errors.Wrapf(err, "get graph info %q", name)
	}
	return info, nil
}

// Raw returns the encoded form of the graph stored under name.
func (s *Store) Raw(name string) ([]byte, error) {
	buf, err := rawGraphs.Get(s.db, name)
	if err != nil {
		return nil, errors.Wrapf(err, "get graph %q", name)
	}
	return buf, nil
}

// Delete removes the graph stored under name, db.ErrKeyNotFound if there is none.
func (s *Store) Delete(name string) (err error) {
	defer s.metrics.observe(opDelete)(&err)

	has, err := graphs.Has(s.db, name)
	if err != nil {
		return errors.Wrapf(err, "delete graph %q", name)
	}
	if !has {
		return errors.Wrapf(db.ErrKeyNotFound, "delete graph %q", name)
	}
	if err = graphs.Delete(s.db, name); err != nil {
		return errors.Wrapf(err, "delete graph %q", name)
	}
	if err = infos.Delete(s.db, name); err != nil {
		return errors.Wrapf(err, "delete graph info %q", name)
	}
	s.metrics.graphs.Dec()

	s.log.Debugw("Deleted graph", "name", name)
	return nil
}

// Names lists the names of the stored graphs in byte order.
func (s *Store) Names() ([]string, error) {
	names, err := graphs.Keys(s.db)
	return names, errors.Wrap(err, "list graphs")
}

// GetMany decodes the graphs stored under names concurrently. The result follows the
// order of names. The first failure cancels the remaining reads.
func (s *Store) GetMany(ctx context.Context, names []string) ([]record.Graph, error) {
	result := make([]record.Graph, len(names))
	workerPool := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.workers)

	for i, name := range names {
		workerPool.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := s.Get(name)
			if err != nil {
				return err
			}
			result[i] = g
			return nil
		})
	}

	if err := workerPool.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
