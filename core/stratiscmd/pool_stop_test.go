package stratiscmd_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensvc/stratis/core/clierr"
	"github.com/opensvc/stratis/core/stratiscmd"
	"github.com/opensvc/stratis/core/stratisd"
)

func TestPoolStop(t *testing.T) {
	t.Run("by uuid", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StopPool", pool1UUID, "uuid").
			Return(reply([]any{true, pool1UUID}, 0, ""), nil).
			After(gate)

		_, _, err := execute(stratiscmd.NewCmdPoolStop(global()), "--uuid", pool1UUID)
		require.NoError(t, err)
	})

	t.Run("single pool failure is returned as is", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StopPool", "p1", "name").
			Return(reply([]any{false, ""}, 0, ""), nil).
			After(gate)

		_, stderr, err := execute(stratiscmd.NewCmdPoolStop(global()), "p1")
		var e *clierr.NoChangeError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "stop", e.Action)
		assert.Empty(t, stderr)
	})

	t.Run("one of three failing", func(t *testing.T) {
		c := newCaller(t)
		gate := expectGate(c)
		first := c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StopPool", "p1", "name").
			Return(reply([]any{true, pool1UUID}, 0, ""), nil).
			After(gate)
		second := c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StopPool", "p2", "name").
			Return(reply([]any{false, ""}, 1, "pool is busy"), nil).
			After(first)
		c.EXPECT().
			Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "StopPool", "p3", "name").
			Return(reply([]any{true, fs1UUID}, 0, ""), nil).
			After(second)

		_, stderr, err := execute(stratiscmd.NewCmdPoolStop(global()), "p1", "p2", "p3")
		var e *clierr.BatchError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, &clierr.BatchError{Failed: 1, Total: 3}, e)
		assert.Equal(t, "Execution failed: stratisd failed to perform the operation that you requested. It returned the following information via the D-Bus: pool is busy.\n", stderr)
	})

	t.Run("names and flags are exclusive", func(t *testing.T) {
		newCaller(t)
		_, _, err := execute(stratiscmd.NewCmdPoolStop(global()), "p1", "--name", "p2")
		var e *clierr.ValidationError
		require.True(t, errors.As(err, &e))
	})
}

func TestPoolDestroy(t *testing.T) {
	c := newCaller(t)
	gate := expectGate(c)
	objs := expectObjects(c, objectsWithPool()).After(gate)
	c.EXPECT().
		Call(gomock.Any(), stratisd.TopObject, stratisd.ManagerInterface, "DestroyPool", pool1Path).
		Return(reply([]any{true, pool1UUID}, 0, ""), nil).
		After(objs)

	_, _, err := execute(stratiscmd.NewCmdPoolDestroy(global()), "p1")
	require.NoError(t, err)
}

func TestPoolDestroyNotFound(t *testing.T) {
	c := newCaller(t)
	gate := expectGate(c)
	expectObjects(c, objectsWithPool()).After(gate)

	_, _, err := execute(stratiscmd.NewCmdPoolDestroy(global()), "p9")
	var e *clierr.ResourceNotFoundError
	require.True(t, errors.As(err, &e))
}
