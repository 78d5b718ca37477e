package multicore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_GetInstance(t *testing.T) {
	r := newTestRegistry(t)

	facade, err := r.GetFacade("FacadeTestKey1", nil)
	require.NoError(t, err)
	require.NotNil(t, facade)

	again, err := r.GetFacade("FacadeTestKey1", nil)
	require.NoError(t, err)
	assert.Same(t, facade, again)
	assert.Equal(t, "FacadeTestKey1", facade.Key())
	assert.Same(t, r, facade.Registry())

	model, _ := r.GetModel("FacadeTestKey1", nil)
	view, _ := r.GetView("FacadeTestKey1", nil)
	controller, _ := r.GetController("FacadeTestKey1", nil)
	assert.Same(t, model, facade.Model())
	assert.Same(t, view, facade.View())
	assert.Same(t, controller, facade.Controller())
}

func TestFacade_NewFacadeRejectsDuplicateKey(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.GetFacade("dup", nil)
	require.NoError(t, err)

	_, err = NewFacade(r, "dup")
	var dup *DuplicateCoreError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, KindFacade, dup.Kind)
}

func TestFacade_UsesPreexistingComponents(t *testing.T) {
	r := newTestRegistry(t)
	model, err := r.GetModel("custom", nil)
	require.NoError(t, err)

	facade, err := r.GetFacade("custom", nil)
	require.NoError(t, err)
	assert.Same(t, model, facade.Model())
}

func TestFacade_RegisterCommandAndSendNotification(t *testing.T) {
	r := newTestRegistry(t)
	facade, err := r.GetFacade("FacadeTestKey2", nil)
	require.NoError(t, err)

	facade.RegisterCommand("FacadeTestNote", func() Command { return &doubleCommand{} })

	vo := &testVO{Input: 32}
	require.NoError(t, facade.SendNotification("FacadeTestNote", vo, ""))
	assert.Equal(t, 64, vo.Result)
}

func TestFacade_RegisterAndRemoveCommand(t *testing.T) {
	r := newTestRegistry(t)
	facade, err := r.GetFacade("FacadeTestKey3", nil)
	require.NoError(t, err)

	facade.RegisterCommand("FacadeTestNote", func() Command { return &doubleCommand{} })
	assert.True(t, facade.HasCommand("FacadeTestNote"))
	facade.RemoveCommand("FacadeTestNote")
	assert.False(t, facade.HasCommand("FacadeTestNote"))

	vo := &testVO{Input: 32}
	require.NoError(t, facade.SendNotification("FacadeTestNote", vo, ""))
	assert.Equal(t, 0, vo.Result)
}

func TestFacade_ProxyOperations(t *testing.T) {
	r := newTestRegistry(t)
	facade, err := r.GetFacade("FacadeTestKey4", nil)
	require.NoError(t, err)

	facade.RegisterProxy(NewProxy("colors", []string{"red", "green", "blue"}))
	assert.True(t, facade.HasProxy("colors"))

	proxy := facade.RetrieveProxy("colors")
	require.NotNil(t, proxy)
	assert.Equal(t, []string{"red", "green", "blue"}, proxy.Data())

	removed := facade.RemoveProxy("colors")
	assert.Same(t, proxy, removed)
	assert.False(t, facade.HasProxy("colors"))
	assert.Nil(t, facade.RetrieveProxy("colors"))
}

func TestFacade_MediatorOperations(t *testing.T) {
	r := newTestRegistry(t)
	facade, err := r.GetFacade("FacadeTestKey5", nil)
	require.NoError(t, err)

	mediator := newRecordingMediator("buttons", "click")
	facade.RegisterMediator(mediator)
	assert.True(t, facade.HasMediator("buttons"))
	assert.Same(t, mediator, facade.RetrieveMediator("buttons"))

	require.NoError(t, facade.SendNotification("click", nil, ""))
	assert.Equal(t, []string{"click"}, mediator.handledNames())

	assert.Same(t, mediator, facade.RemoveMediator("buttons"))
	assert.False(t, facade.HasMediator("buttons"))
	assert.Nil(t, facade.RetrieveMediator("buttons"))
}

func TestFacade_NotifyObserversCarriesBodyAndType(t *testing.T) {
	r := newTestRegistry(t)
	facade, err := r.GetFacade("typed", nil)
	require.NoError(t, err)

	var got *Notification
	facade.View().RegisterObserver("note", NewObserver(func(n *Notification) error {
		got = n
		return nil
	}, t))

	require.NoError(t, facade.SendNotification("note", "body", "kind"))
	require.NotNil(t, got)
	assert.Equal(t, "body", got.Body())
	assert.Equal(t, "kind", got.Type())

	note := NewNotification("note", 1, "")
	require.NoError(t, facade.NotifyObservers(note))
	assert.Same(t, note, got)
}

func TestFacade_SendNotificationReturnsHandlerError(t *testing.T) {
	r := newTestRegistry(t)
	facade, err := r.GetFacade("errors", nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	facade.RegisterCommand("fail", func() Command { return &failingCommand{err: boom} })

	assert.ErrorIs(t, facade.SendNotification("fail", nil, ""), boom)
}

func TestFacade_HasCoreAndRemoveCore(t *testing.T) {
	r := newTestRegistry(t)
	assert.False(t, r.HasCore("FacadeTestKey6"))

	_, err := r.GetFacade("FacadeTestKey6", nil)
	require.NoError(t, err)
	assert.True(t, r.HasCore("FacadeTestKey6"))

	r.RemoveCore("FacadeTestKey6")
	assert.False(t, r.HasCore("FacadeTestKey6"))
}
