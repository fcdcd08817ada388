package resolver

import "go.uber.org/zap"

// Resolver finds the bindings of the target's type parameters for leaf types.
type Resolver interface {
	// Resolve returns the model for d, or false when d's hierarchy does not
	// reach the target.
	Resolve(d Decl) (*Model, bool)
	// Lookup returns an already resolved model by qualified name.
	Lookup(name string) (*Model, bool)
}

// Strategy selects which inheritance dimensions are searched.
type Strategy int

const (
	// ClassChain walks the superclass chain only.
	ClassChain Strategy = iota
	// InterfaceAware walks the superclass first, then every implemented or
	// extended interface.
	InterfaceAware
)

func (s Strategy) String() string {
	switch s {
	case ClassChain:
		return "class"
	case InterfaceAware:
		return "interface"
	default:
		return "unknown"
	}
}

// StrategyFor returns the strategy able to reach target.
func StrategyFor(target Decl) Strategy {
	if target != nil && target.IsInterface() {
		return InterfaceAware
	}
	return ClassChain
}

// Option configures a resolver.
type Option func(*resolverImpl)

// WithStrategy overrides the default ClassChain strategy.
func WithStrategy(s Strategy) Option {
	return func(r *resolverImpl) { r.strategy = s }
}

// WithLogger sets the logger used for traversal traces.
func WithLogger(l *zap.Logger) Option {
	return func(r *resolverImpl) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCache makes the resolver share an existing cache.
func WithCache(c *Cache) Option {
	return func(r *resolverImpl) {
		if c != nil {
			r.cache = c
		}
	}
}

type resolverImpl struct {
	ctx      Context
	host     Introspector
	strategy Strategy
	cache    *Cache
	log      *zap.Logger
}

// New builds a resolver for ctx over host.
func New(ctx Context, host Introspector, opts ...Option) Resolver {
	r := &resolverImpl{
		ctx:      ctx,
		host:     host,
		strategy: ClassChain,
		cache:    NewCache(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *resolverImpl) Resolve(d Decl) (*Model, bool) {
	if d == nil {
		return nil, false
	}
	// Models are extended in place while a search is in flight.
	r.cache.search.Lock()
	defer r.cache.search.Unlock()
	return r.resolve(d)
}

func (r *resolverImpl) Lookup(name string) (*Model, bool) {
	return r.cache.resolved(name)
}

func (r *resolverImpl) resolve(d Decl) (*Model, bool) {
	name := d.QualifiedName()
	m, st, loaded := r.cache.register(name, func() []string { return r.host.TypeParams(d) })
	if loaded {
		if st == stateResolved {
			r.log.Debug("cache hit", zap.String("type", name))
			return m, true
		}
		// Pending means the hierarchy re-entered itself.
		r.log.Debug("cache miss", zap.String("type", name), zap.Bool("cycle", st == statePending))
		return nil, false
	}

	var ok bool
	switch r.strategy {
	case InterfaceAware:
		ok = r.searchSpineAndRibs(d, m)
	default:
		ok = r.searchClassChain(d, m)
	}
	r.cache.settle(m, ok)
	if !ok {
		r.log.Debug("no binding", zap.String("type", name))
		return nil, false
	}
	return m, true
}

// searchClassChain follows the superclass chain only.
func (r *resolverImpl) searchClassChain(d Decl, m *Model) bool {
	if d.IsInterface() {
		return false
	}
	superRef, ok := r.host.Superclass(d)
	if !ok {
		return false
	}
	superDecl, ok := r.host.DeclOf(superRef)
	if !ok {
		return false
	}
	superName := superDecl.QualifiedName()

	if cached, ok := r.cache.resolved(superName); ok {
		r.propagate(m, superRef, cached)
		return true
	}
	if superName == r.ctx.TargetQualifiedName() {
		return r.bindDirect(m, superRef, superDecl)
	}
	if isExcluded(r.ctx, superName) {
		r.log.Debug("excluded", zap.String("type", m.name), zap.String("super", superName))
		return false
	}
	superModel, ok := r.resolve(superDecl)
	if !ok {
		return false
	}
	r.propagate(m, superRef, superModel)
	return true
}

type edge struct {
	ref  TypeRef
	decl Decl
}

// searchSpineAndRibs checks cached spine and ribs first, then direct hits on
// the target, then recurses into the spine and finally each rib. The first
// success wins.
func (r *resolverImpl) searchSpineAndRibs(d Decl, m *Model) bool {
	target := r.ctx.TargetQualifiedName()

	var spine *edge
	if ref, ok := r.host.Superclass(d); ok {
		if decl, ok := r.host.DeclOf(ref); ok {
			spine = &edge{ref: ref, decl: decl}
		}
	}
	ribs := make([]edge, 0)
	for _, ref := range r.host.Interfaces(d) {
		if decl, ok := r.host.DeclOf(ref); ok {
			ribs = append(ribs, edge{ref: ref, decl: decl})
		}
	}

	if spine != nil {
		if cached, ok := r.cache.resolved(spine.decl.QualifiedName()); ok {
			r.propagate(m, spine.ref, cached)
			return true
		}
	}
	for _, rib := range ribs {
		if cached, ok := r.cache.resolved(rib.decl.QualifiedName()); ok {
			r.propagate(m, rib.ref, cached)
			return true
		}
	}

	for _, rib := range ribs {
		if rib.decl.QualifiedName() == target && r.bindDirect(m, rib.ref, rib.decl) {
			return true
		}
	}
	if spine != nil && spine.decl.QualifiedName() == target && r.bindDirect(m, spine.ref, spine.decl) {
		return true
	}

	if spine != nil && r.recurse(m, *spine) {
		return true
	}
	for _, rib := range ribs {
		if r.recurse(m, rib) {
			return true
		}
	}
	return false
}

func (r *resolverImpl) recurse(m *Model, e edge) bool {
	name := e.decl.QualifiedName()
	if name == r.ctx.TargetQualifiedName() {
		return false
	}
	if isExcluded(r.ctx, name) {
		r.log.Debug("excluded", zap.String("type", m.name), zap.String("super", name))
		return false
	}
	superModel, ok := r.resolve(e.decl)
	if !ok {
		return false
	}
	r.propagate(m, e.ref, superModel)
	return true
}
