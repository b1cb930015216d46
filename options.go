package graphfusion

import (
	"github.com/graphfusion/graphfusion-go/internal/functions"
	"github.com/graphfusion/graphfusion-go/internal/sparql"
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xlog"
)

// StoreOptions carries the store-lifetime configuration of spec §6:
// base IRI resolution, target row-group size, and custom function
// registration. All fields are optional; zero values pick sane defaults.
type StoreOptions struct {
	BaseIRI      string
	RowGroupSize int
	Logger       *xlog.Logger
	Functions    map[string]CustomFunction
}

// CustomFunction is a user-registered SPARQL extension function, called
// with its already-evaluated arguments; ok=false masks the calling row
// per the same per-row failure policy internal/functions uses (spec §7).
type CustomFunction func(args []term.Term) (term.Term, bool)

// StoreOption configures a Store at construction time.
type StoreOption func(*StoreOptions)

// WithBaseIRI records iri in StoreOptions.BaseIRI (spec §6 "Base IRI for
// IRI resolution"). Neither query evaluation nor LoadFromReader reads this
// field: relative IRIs are not resolved against it.
func WithBaseIRI(iri string) StoreOption {
	return func(o *StoreOptions) { o.BaseIRI = iri }
}

// WithRowGroupSize overrides the index row-group size (spec §6 "Target
// row-group size"); <= 0 uses internal/store's own default.
func WithRowGroupSize(n int) StoreOption {
	return func(o *StoreOptions) { o.RowGroupSize = n }
}

// WithLogger attaches a structured logger; the Store logs Insert, Remove
// and Extend outcomes at Debug level and query failures at Error level.
func WithLogger(l *xlog.Logger) StoreOption {
	return func(o *StoreOptions) { o.Logger = l }
}

// WithCustomFunction records a `(iri, callable)` pair in
// StoreOptions.Functions (spec §6). Query evaluation does not consult this
// map, so a registered function is not callable from SPARQL queries
// against this store.
func WithCustomFunction(iri string, fn CustomFunction) StoreOption {
	return func(o *StoreOptions) {
		if o.Functions == nil {
			o.Functions = make(map[string]CustomFunction)
		}
		o.Functions[iri] = fn
	}
}

func defaultStoreOptions() StoreOptions {
	return StoreOptions{Logger: xlog.Discard}
}

// QueryOptions carries the per-query configuration of spec §6: dataset
// overrides and the deterministic NOW()/RAND() seeding of SPEC_FULL's
// Open Questions decisions.
type QueryOptions struct {
	Dataset   sparql.Dataset
	Clock     functions.Clock
	RandSeed1 uint64
	RandSeed2 uint64
	Logger    *xlog.Logger
}

// QueryOption configures one Query/QueryOpt call.
type QueryOption func(*QueryOptions)

// WithDataset overrides the query's FROM/FROM NAMED graph sets (spec §6
// "Dataset overrides").
func WithDataset(ds sparql.Dataset) QueryOption {
	return func(o *QueryOptions) { o.Dataset = ds }
}

// WithClock fixes the instant NOW() resolves to for the whole query
// evaluation (SPEC_FULL Open Questions: "NOW()/time-dependent functions").
func WithClock(c functions.Clock) QueryOption {
	return func(o *QueryOptions) { o.Clock = c }
}

// WithRandSeed seeds RAND() deterministically for one query (SPEC_FULL
// Open Questions: "RAND()"); production callers leave this unset and get
// a fresh, non-reproducible seed per query. UUID()/STRUUID() come from
// github.com/google/uuid and do not use this seed.
func WithRandSeed(seed1, seed2 uint64) QueryOption {
	return func(o *QueryOptions) { o.RandSeed1, o.RandSeed2 = seed1, seed2 }
}

// WithQueryLogger overrides the store's default logger for one query.
func WithQueryLogger(l *xlog.Logger) QueryOption {
	return func(o *QueryOptions) { o.Logger = l }
}

func defaultQueryOptions(base StoreOptions) QueryOptions {
	return QueryOptions{Logger: base.Logger}
}
