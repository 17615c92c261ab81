package stratiscmd

import (
	"github.com/spf13/cobra"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/objects"
	"github.com/opensvc/stratis/core/stratisd"
)

type (
	CmdPoolExtendData struct {
		OptsGlobal
		Name        string
		DeviceUUIDs []string
	}
)

func NewCmdPoolExtendData(g *OptsGlobal) *cobra.Command {
	var options CmdPoolExtendData
	cmd := &cobra.Command{
		Use:   "extend-data <pool>",
		Short: "extend the pool onto the additional space of its grown block devices",
		Long:  "Extend the pool onto the additional space of the block devices selected by --device-uuid, or of all its block devices whose size increased.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.bind(cmd, g)
			options.Name = args[0]
			return options.Run()
		},
	}
	FlagDeviceUUID(cmd.Flags(), &options.DeviceUUIDs)
	return cmd
}

// devices returns the block devices to grow.
func (t *CmdPoolExtendData) devices(devs objects.Objects, uuids []objects.ID) (objects.Objects, error) {
	if len(uuids) == 0 {
		l := make(objects.Objects, 0)
		for _, dev := range devs {
			if expandable(dev) {
				l = append(l, dev)
			}
		}
		return l, nil
	}
	l := make(objects.Objects, 0, len(uuids))
	missing := make([]string, 0)
	for _, id := range uuids {
		found := false
		for _, dev := range devs {
			if dev.UUID() == id.Value() {
				l = append(l, dev)
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, id.Value())
		}
	}
	if len(missing) > 0 {
		return nil, &clierr.ResourceNotFoundError{
			Kind: objects.KindBlockdev,
			ID:   "UUID " + objects.FormatUUIDs(missing, t.uuidFormatter()),
		}
	}
	return l, nil
}

func (t *CmdPoolExtendData) Run() error {
	uuids := make([]objects.ID, len(t.DeviceUUIDs))
	for i, s := range t.DeviceUUIDs {
		id, err := objects.NewUUID(s)
		if err != nil {
			return err
		}
		uuids[i] = id
	}
	s, err := t.connect(stratisd.Revision)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := t.context()
	id := objects.NewName(t.Name)
	m, pool, o, err := s.pool(ctx, id)
	if err != nil {
		return err
	}
	devs, err := t.devices(m.Blockdevs().InPool(o.Path), uuids)
	if err != nil {
		return err
	}
	if len(devs) == 0 {
		return noChange(false, "extend-data", id.String())
	}
	for _, dev := range devs {
		changed, err := pool.GrowPhysicalDevice(ctx, dev.UUID())
		if err != nil {
			return err
		}
		if err := noChange(changed, "extend-data", "block device UUID "+t.uuidFormatter()(dev.UUID())); err != nil {
			return err
		}
	}
	return nil
}
