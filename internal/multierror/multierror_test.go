package multierror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiError_Error(t *testing.T) {
	m := New[string]()
	m.Add("node2", errors.New("error2"))
	m.Add("node1", errors.New("error1"))
	assert.Equal(t, "node2: error2; node1: error1", m.Error())
}

func TestMultiError_Combined(t *testing.T) {
	m := New[string]()
	assert.Nil(t, m.Combined())

	m.Add("1", nil)
	assert.Nil(t, m.Combined())

	m.Add("1", errors.New("error"))
	assert.NotNil(t, m.Combined())
}

func TestMultiError_ReplaceKeepsOrder(t *testing.T) {
	m := New[int]()
	m.Add(1, errors.New("a"))
	m.Add(2, errors.New("b"))
	m.Add(1, errors.New("c"))

	assert.Equal(t, []int{1, 2}, m.Keys())
	assert.Equal(t, "c", m.First().Error())
	assert.Equal(t, 2, m.Len())
}

func TestMultiError_Is(t *testing.T) {
	target := errors.New("target")

	m := New[string]()
	m.Add("node1", errors.New("other"))
	m.Add("node2", target)

	assert.ErrorIs(t, m, target)

	err, ok := m.Get("node2")
	assert.True(t, ok)
	assert.Equal(t, target, err)
}
