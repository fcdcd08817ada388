package resolver

import "go.uber.org/zap"

// bindDirect binds the target's parameters to the arguments ref supplies.
// ref must point at the target itself.
func (r *resolverImpl) bindDirect(m *Model, ref TypeRef, target Decl) bool {
	params := r.host.TypeParams(target)
	args := ref.Args()
	if len(args) == 0 || len(args) != len(params) {
		r.log.Debug("shape mismatch",
			zap.String("type", m.name),
			zap.String("ref", ref.String()),
			zap.Int("params", len(params)),
			zap.Int("args", len(args)),
		)
		return false
	}

	rec := r.ctx.NewRecord()
	for i, slot := range params {
		arg := args[i]
		if !arg.IsVariable() {
			rec.Put(slot, arg)
			continue
		}
		if pos, ok := m.Position(arg.Name()); ok {
			m.addPending(pos, slot)
		}
	}
	m.record = rec
	r.log.Debug("direct binding",
		zap.String("type", m.name),
		zap.String("ref", ref.String()),
		zap.Bool("complete", m.Complete()),
	)
	return true
}

// propagate carries src's bindings across the hop written as ref on m's
// declaration. A complete record is shared as is; an incomplete one is
// copied before m's own arguments are applied to it.
func (r *resolverImpl) propagate(m *Model, ref TypeRef, src *Model) {
	if src.Complete() {
		m.record = src.record
		r.log.Debug("shared binding", zap.String("type", m.name), zap.String("from", src.name))
		return
	}

	var rec Record
	if src.record != nil {
		rec = src.record.Copy()
	}
	if rec == nil {
		rec = r.ctx.NewRecord()
	}
	m.record = rec

	args := ref.Args()
	for _, pos := range src.pendingPositions() {
		if pos >= len(args) {
			continue
		}
		slots := src.pending[pos]
		arg := args[pos]
		if !arg.IsVariable() {
			for _, slot := range slots {
				rec.Put(slot, arg)
			}
			continue
		}
		if own, ok := m.Position(arg.Name()); ok {
			m.addPending(own, slots...)
		}
	}
	r.log.Debug("propagated binding",
		zap.String("type", m.name),
		zap.String("from", src.name),
		zap.Bool("complete", m.Complete()),
	)
}
