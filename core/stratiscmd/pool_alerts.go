package stratiscmd

import (
	"math/big"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/props"
	"github.com/opensvc/stratis/util/sizeconv"
)

type (
	// alert is a pool condition worth the attention of the administrator.
	alert struct {
		Code    string `json:"code" yaml:"code"`
		Summary string `json:"summary" yaml:"summary"`
		Explain string `json:"explanation" yaml:"explanation"`
	}

	CmdPoolExplain struct {
		OptsGlobal
		Code string
	}
)

// The pool AvailableActions property values.
const (
	actionsFullyOperational = "fully_operational"
	actionsNoIPCRequests    = "no_ipc_requests"
	actionsNoPoolChanges    = "no_pool_changes"
)

var (
	alertNoIPCRequests = alert{
		Code:    "EM001",
		Summary: "Pool state changes not possible",
		Explain: "The pool will return an error on any IPC request that could cause a change in the pool state, for example, a request to rename a filesystem. It will still be able to respond to purely informational requests.",
	}
	alertNoPoolChanges = alert{
		Code:    "EM002",
		Summary: "Pool maintenance operations not possible",
		Explain: "The pool is unable to manage itself by reacting to events, such as devicemapper events, that might require it to take any maintenance operations.",
	}
	alertNoAllocSpace = alert{
		Code:    "WS001",
		Summary: "All devices fully allocated",
		Explain: "Every device belonging to the pool has been fully allocated. To increase the allocable space, add additional data devices to the pool.",
	}
	alertDeviceSizeIncreased = alert{
		Code:    "IDS001",
		Summary: "A device in this pool has increased in size.",
		Explain: "At least one device belonging to this pool appears to have increased in size.",
	}
	alertDeviceSizeDecreased = alert{
		Code:    "WDS002",
		Summary: "A device in this pool has decreased in size.",
		Explain: "At least one device belonging to this pool appears to have decreased in size.",
	}
	alertVolumeKeyNotLoaded = alert{
		Code:    "WC001",
		Summary: "Volume key not loaded",
		Explain: "The pool's volume key is not loaded. This may result in an error if the pool's encryption layer needs to be modified. If the pool is encrypted with a key in the kernel keyring then setting that key may resolve the problem.",
	}
	alertVolumeKeyStatusUnknown = alert{
		Code:    "WC002",
		Summary: "Volume key status unknown",
		Explain: "The pool's volume key may or may not be loaded. If the volume key is not loaded, there may an error if the pool's encryption layer needs to be modified.",
	}

	alerts = []alert{
		alertNoIPCRequests,
		alertNoPoolChanges,
		alertNoAllocSpace,
		alertDeviceSizeIncreased,
		alertDeviceSizeDecreased,
		alertVolumeKeyNotLoaded,
		alertVolumeKeyStatusUnknown,
	}
)

func alertCodes() []string {
	l := make([]string, len(alerts))
	for i, a := range alerts {
		l[i] = a.Code
	}
	sort.Strings(l)
	return l
}

func alertByCode(code string) (alert, bool) {
	for _, a := range alerts {
		if a.Code == code {
			return a, true
		}
	}
	return alert{}, false
}

// poolAlerts returns the alerts raised by the pool properties and the
// sizes of its member block devices.
func poolAlerts(m objects.Map, pool objects.Object) []alert {
	l := make([]alert, 0)
	if v, ok := pool.Props.String("AvailableActions").Get(); ok {
		switch v.(string) {
		case actionsNoIPCRequests:
			l = append(l, alertNoIPCRequests, alertNoPoolChanges)
		case actionsNoPoolChanges:
			l = append(l, alertNoPoolChanges)
		}
	}
	if b, ok := pool.Props.Bool("NoAllocSpace").Bool(); ok && b {
		l = append(l, alertNoAllocSpace)
	}
	increased, decreased := deviceSizeChanges(m.Blockdevs().InPool(pool.Path))
	if increased {
		l = append(l, alertDeviceSizeIncreased)
	}
	if decreased {
		l = append(l, alertDeviceSizeDecreased)
	}
	l = append(l, volumeKeyAlerts(pool.Props)...)
	return l
}

// volumeKeyAlerts reports an encrypted pool whose volume key is not known
// to be loaded. Daemons not exposing VolumeKeyLoaded raise no alert.
func volumeKeyAlerts(table props.Table) []alert {
	if encrypted, ok := table.Bool("Encrypted").Bool(); !ok || !encrypted {
		return nil
	}
	if _, ok := table["VolumeKeyLoaded"]; !ok {
		return nil
	}
	v := table.MaybeBool("VolumeKeyLoaded")
	switch loaded, ok := v.Bool(); {
	case !ok:
		return []alert{alertVolumeKeyStatusUnknown}
	case !loaded:
		return []alert{alertVolumeKeyNotLoaded}
	default:
		return nil
	}
}

// deviceSizeChanges compares the in-use and the observed size of each
// block device.
func deviceSizeChanges(devs objects.Objects) (increased, decreased bool) {
	for _, dev := range devs {
		total, ok := dev.Props.Bytes("TotalPhysicalSize").Get()
		if !ok {
			continue
		}
		observed, ok := dev.Props.MaybeBytes("NewPhysicalSize").Get()
		if !ok {
			continue
		}
		switch observed.(*big.Int).Cmp(total.(*big.Int)) {
		case 1:
			increased = true
		case -1:
			decreased = true
		}
	}
	return
}

func alertString(l []alert) string {
	codes := make([]string, len(l))
	for i, a := range l {
		codes[i] = a.Code
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}

// expandable returns true if the observed size of the block device
// exceeds its in-use size.
func expandable(dev objects.Object) bool {
	total, ok := dev.Props.Bytes("TotalPhysicalSize").Get()
	if !ok {
		return false
	}
	observed, ok := dev.Props.MaybeBytes("NewPhysicalSize").Get()
	if !ok {
		return false
	}
	return observed.(*big.Int).Cmp(total.(*big.Int)) > 0
}

func NewCmdPoolExplain(g *OptsGlobal) *cobra.Command {
	var options CmdPoolExplain
	cmd := &cobra.Command{
		Use:       "explain <code>",
		Short:     "explain a pool alert code",
		Args:      cobra.ExactArgs(1),
		ValidArgs: alertCodes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Code = args[0]
			return options.Run()
		},
	}
	return cmd
}

func (t *CmdPoolExplain) Run() error {
	a, ok := alertByCode(t.Code)
	if !ok {
		return clierr.Validationf("invalid alert code %q: use one of %s", t.Code, strings.Join(alertCodes(), ", "))
	}
	return t.render(a, func() string {
		return a.Explain + "\n"
	})
}

// sizeOf renders a bytes count value.
func sizeOf(v props.Value) string {
	return v.Render(func(a any) string {
		return sizeconv.BSizeCompact(a.(*big.Int))
	})
}
