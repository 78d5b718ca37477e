package multicore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_RegisterAndRetrieveProxy(t *testing.T) {
	r := newTestRegistry(t)
	model, err := r.GetModel("ModelTestKey1", nil)
	require.NoError(t, err)

	model.RegisterProxy(NewProxy("colors", []string{"red", "green", "blue"}))

	proxy := model.RetrieveProxy("colors")
	require.NotNil(t, proxy)
	assert.Equal(t, []string{"red", "green", "blue"}, proxy.Data())
	assert.Equal(t, "ModelTestKey1", proxy.MultitonKey())
	assert.True(t, model.HasProxy("colors"))
	assert.Nil(t, model.RetrieveProxy("missing"))
}

func TestModel_RegisterAndRemoveProxy(t *testing.T) {
	r := newTestRegistry(t)
	model, err := r.GetModel("ModelTestKey2", nil)
	require.NoError(t, err)

	model.RegisterProxy(NewProxy("sizes", []int{7, 13, 21}))

	removed := model.RemoveProxy("sizes")
	require.NotNil(t, removed)
	assert.Equal(t, "sizes", removed.ProxyName())
	assert.False(t, model.HasProxy("sizes"))
	assert.Nil(t, model.RetrieveProxy("sizes"))
	assert.Nil(t, model.RemoveProxy("sizes"))
}

func TestModel_ReRegisterReplaces(t *testing.T) {
	r := newTestRegistry(t)
	model, err := r.GetModel("replace", nil)
	require.NoError(t, err)

	model.RegisterProxy(NewProxy("p", 1))
	model.RegisterProxy(NewProxy("p", 2))

	assert.Equal(t, 2, model.RetrieveProxy("p").Data())
	assert.Equal(t, []string{"p"}, model.ProxyNames())
}

func TestModel_OnRegisterAndOnRemove(t *testing.T) {
	r := newTestRegistry(t)
	model, err := r.GetModel("ModelTestKey4", nil)
	require.NoError(t, err)

	proxy := newHookProxy("ModelTestProxy")
	model.RegisterProxy(proxy)
	assert.Equal(t, "onRegister Called", proxy.Data())

	model.RemoveProxy("ModelTestProxy")
	assert.Equal(t, "onRemove Called", proxy.Data())
}

func TestModel_ProxyNamesSorted(t *testing.T) {
	r := newTestRegistry(t)
	model, err := r.GetModel("names", nil)
	require.NoError(t, err)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		model.RegisterProxy(NewProxy(name, nil))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, model.ProxyNames())
}

func TestModel_DefaultProxyName(t *testing.T) {
	assert.Equal(t, DefaultProxyName, NewProxy("", nil).ProxyName())
}

func TestModel_NewModelRejectsDuplicateKey(t *testing.T) {
	r := newTestRegistry(t)
	_, err := NewModel(r, "dup")
	require.NoError(t, err)

	_, err = NewModel(r, "dup")
	assert.True(t, IsDuplicateCore(err))
	assert.Contains(t, err.Error(), `Model instance for multiton key "dup" already constructed`)
}
