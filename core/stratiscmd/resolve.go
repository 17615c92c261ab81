package stratiscmd

import (
	"context"
	"math/big"
	"path/filepath"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/core/stratisd"
)

// pool loads the object map and resolves the pool designated by id.
func (t *session) pool(ctx context.Context, id objects.ID) (objects.Map, *stratisd.Pool, objects.Object, error) {
	m, err := t.objects(ctx)
	if err != nil {
		return nil, nil, objects.Object{}, err
	}
	o, err := m.ResolvePool(id)
	if err != nil {
		return nil, nil, objects.Object{}, err
	}
	return m, stratisd.NewPool(t.caller, o.Path), o, nil
}

// filesystem loads the object map and resolves the named filesystem of the
// named pool.
func (t *session) filesystem(ctx context.Context, poolName, fsName string) (*stratisd.Pool, *stratisd.Filesystem, error) {
	m, err := t.objects(ctx)
	if err != nil {
		return nil, nil, err
	}
	pool, fs, err := m.ResolveFilesystem(poolName, fsName)
	if err != nil {
		return nil, nil, err
	}
	return stratisd.NewPool(t.caller, pool.Path), stratisd.NewFilesystem(t.caller, fs.Path), nil
}

// stoppedPool returns the stopped pool designated by id.
func (t *session) stoppedPool(ctx context.Context, id objects.ID) (stratisd.StoppedPool, error) {
	m, err := t.manager.StoppedPools(ctx)
	if err != nil {
		return stratisd.StoppedPool{}, err
	}
	for _, p := range stratisd.SortedStoppedPools(m) {
		if matchStopped(p, id) {
			return p, nil
		}
	}
	return stratisd.StoppedPool{}, &clierr.ResourceNotFoundError{Kind: objects.KindPool, ID: id.String()}
}

func matchStopped(p stratisd.StoppedPool, id objects.ID) bool {
	if id.IsUUID() {
		return p.UUID == id.Value()
	}
	name, ok := p.Name.Get()
	return ok && name.(string) == id.Value()
}

// poolIDArg returns the StartPool and StopPool pool designation.
func poolIDArg(id objects.ID) stratisd.PoolID {
	if id.IsUUID() {
		return stratisd.PoolIDByUUID(id.Value())
	}
	return stratisd.PoolIDByName(id.Value())
}

// absPaths returns the absolute paths of the block devices, without
// duplicates, in input order.
func absPaths(l []string) ([]string, error) {
	seen := make(map[string]bool)
	paths := make([]string, 0, len(l))
	for _, s := range l {
		p, err := filepath.Abs(s)
		if err != nil {
			return nil, clierr.Validationf("invalid block device path %q: %s", s, err)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		return nil, &clierr.ValidationError{Msg: ErrNoDevice.Error()}
	}
	return paths, nil
}

// sizeTriple renders "total / used / free".
func sizeTriple(total, used props.Value) string {
	return sizeOf(total) + " / " + sizeOf(used) + " / " + freeOf(total, used)
}

// freeOf renders the difference of the total and used sizes.
func freeOf(total, used props.Value) string {
	free := props.Unobtainable("total or used size is unobtainable")
	t, tok := total.Get()
	u, uok := used.Get()
	if tok && uok {
		free = props.Ok(new(big.Int).Sub(t.(*big.Int), u.(*big.Int)))
	}
	return sizeOf(free)
}

// yesNo renders a boolean value.
func yesNo(v props.Value) string {
	return v.Render(func(a any) string {
		if a.(bool) {
			return "Yes"
		}
		return "No"
	})
}

// flagCode renders the name boolean property as a code prefixed by " "
// when set, "~" when unset or absent from the table, "?" when the value is
// unobtainable or uninterpretable.
func flagCode(table props.Table, name, code string) string {
	if _, ok := table[name]; !ok {
		return "~" + code
	}
	v := table.Bool(name)
	switch b, ok := v.Bool(); {
	case ok && b:
		return " " + code
	case ok:
		return "~" + code
	default:
		log.Debug().Str("property", name).Str("reason", v.Reason()).Msg("flag rendered as unknown")
		return "?" + code
	}
}

// poolName returns the name of the pool at path, or the failure sentinel.
func poolName(names map[dbus.ObjectPath]string, v props.Value) string {
	p, ok := v.Get()
	if !ok {
		return v.String()
	}
	if name, ok := names[p.(dbus.ObjectPath)]; ok {
		return name
	}
	return props.FailureString
}
