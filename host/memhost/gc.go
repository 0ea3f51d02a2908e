package memhost

import "github.com/reglet-dev/vecbridge/domain/entities"

// Collect reclaims every object not reachable from the permanent objects,
// the preserve roots or the protect stack. Reclaimed handles are remembered
// so later access reports a use-after-collect instead of an unknown handle.
func (r *Runtime) Collect() {
	r.stats.Collections++
	r.sinceGC = 0

	for h := range r.permanent {
		r.mark(h)
	}
	for h := range r.roots {
		r.mark(h)
	}
	for _, h := range r.protect {
		r.mark(h)
	}

	for h, obj := range r.objects {
		if obj.marked {
			obj.marked = false
			continue
		}
		delete(r.objects, h)
		r.collected[h] = struct{}{}
		r.stats.Reclaimed++
	}
}

func (r *Runtime) mark(h entities.Handle) {
	obj, ok := r.objects[h]
	if !ok || obj.marked {
		return
	}
	obj.marked = true
	for _, ref := range obj.refs {
		r.mark(ref)
	}
}
