// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/constructdoc/internal/errors"
)

type staticRegistry struct {
	supported []string
	valid     []string
}

func (r staticRegistry) Supported() []string { return r.supported }
func (r staticRegistry) Valid() []string     { return r.valid }

func staticFields(fields ...FieldDescriptor) FieldSource {
	return FieldSourceFunc(func() ([]FieldDescriptor, error) { return fields, nil })
}

func staticSelectors(m SelectorMap) SelectorFunc {
	return func(string) (SelectorMap, error) { return m, nil }
}

func TestCollectFields_PreservesOrder(t *testing.T) {
	fields := []FieldDescriptor{
		NewFieldDescriptor("version", "yes", []string{"string"}, "v"),
		NewFieldDescriptor("name", "yes", []string{"string"}, "n"),
		NewFieldDescriptor("channels", "no", []string{"list"}, "c"),
	}
	c := NewCollector(staticFields(fields...), nil, nil, nil)

	got, err := c.CollectFields()
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}

func TestCollectFields_ProviderError(t *testing.T) {
	boom := stderrors.New("schema module exploded")
	c := NewCollector(FieldSourceFunc(func() ([]FieldDescriptor, error) { return nil, boom }), nil, nil, nil)

	_, err := c.CollectFields()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, errors.KindCollaborator, errors.GetKind(err))
}

func TestCollectSelectors_PassesPlatformThrough(t *testing.T) {
	var seen string
	c := NewCollector(nil, func(id string) (SelectorMap, error) {
		seen = id
		return SelectorMap{"linux": true, "win": false}, nil
	}, nil, nil)

	sel, err := c.CollectSelectors("linux-64")
	require.NoError(t, err)
	assert.Equal(t, "linux-64", seen)
	assert.Equal(t, SelectorMap{"linux": true, "win": false}, sel)
}

func TestCollectSelectors_EvaluatorError(t *testing.T) {
	boom := stderrors.New("bad platform")
	c := NewCollector(nil, func(string) (SelectorMap, error) { return nil, boom }, nil, nil)

	_, err := c.CollectSelectors("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, errors.KindCollaborator, errors.GetKind(err))
	assert.Equal(t, "nope", errors.GetAttributes(err)["platform"])
}

func TestCollect_MissingCollaborators(t *testing.T) {
	_, err := NewCollector(nil, nil, nil, nil).CollectFields()
	assert.Error(t, err)

	_, err = NewCollector(nil, nil, nil, nil).CollectSelectors("linux-64")
	assert.Error(t, err)
}

func TestCollectPlatforms_SetDifference(t *testing.T) {
	c := NewCollector(nil, nil, staticRegistry{
		supported: []string{"osx-64", "linux-64"},
		valid:     []string{"win-64", "linux-64", "osx-64"},
	}, nil)

	set := c.CollectPlatforms()
	assert.Equal(t, []string{"linux-64", "osx-64"}, set.Supported)
	assert.Equal(t, []string{"win-64"}, set.Unsupported)
}

func TestCollectPlatforms_SupportedOutsideValid(t *testing.T) {
	c := NewCollector(nil, nil, staticRegistry{
		supported: []string{"linux-64", "plan9-64", "linux-64"},
		valid:     []string{"linux-64", "win-64", "win-64"},
	}, nil)

	set := c.CollectPlatforms()
	assert.Equal(t, []string{"linux-64", "plan9-64"}, set.Supported)
	assert.Equal(t, []string{"win-64"}, set.Unsupported)
}

func TestCollectPlatforms_Disjoint(t *testing.T) {
	universe := []string{"a-1", "b-2", "c-3", "d-4"}
	// Every subset of the universe as the supported list.
	for mask := 0; mask < 1<<len(universe); mask++ {
		var supported []string
		for i, p := range universe {
			if mask&(1<<i) != 0 {
				supported = append(supported, p)
			}
		}

		set := NewCollector(nil, nil, staticRegistry{supported: supported, valid: universe}, nil).CollectPlatforms()

		assert.Len(t, set.Supported, len(supported))
		assert.Len(t, set.Unsupported, len(universe)-len(supported))
		for _, u := range set.Unsupported {
			assert.NotContains(t, set.Supported, u)
		}
	}
}

func TestCollectPlatforms_Empty(t *testing.T) {
	set := NewCollector(nil, nil, staticRegistry{}, nil).CollectPlatforms()
	assert.Empty(t, set.Supported)
	assert.Empty(t, set.Unsupported)

	set = NewCollector(nil, nil, nil, nil).CollectPlatforms()
	assert.NotNil(t, set.Supported)
	assert.NotNil(t, set.Unsupported)
}

func TestCollect(t *testing.T) {
	c := NewCollector(
		staticFields(NewFieldDescriptor("version", "yes", []string{"str"}, "Package version.")),
		staticSelectors(SelectorMap{"linux": true, "win": false}),
		staticRegistry{
			supported: []string{"linux-64", "osx-64"},
			valid:     []string{"linux-64", "osx-64", "win-64"},
		},
		nil,
	)

	meta, err := c.Collect("linux-64")
	require.NoError(t, err)

	assert.Equal(t, "linux-64", meta.Platform)
	require.Len(t, meta.Fields, 1)
	assert.Equal(t, "version", meta.Fields[0].Name)
	assert.Equal(t, []string{"linux", "win"}, meta.Selectors.Keys())
	assert.Equal(t, []string{"linux-64", "osx-64"}, meta.Platforms.Supported)
	assert.Equal(t, []string{"win-64"}, meta.Platforms.Unsupported)
}

func TestCollect_StopsOnFieldError(t *testing.T) {
	called := false
	c := NewCollector(
		FieldSourceFunc(func() ([]FieldDescriptor, error) { return nil, stderrors.New("nope") }),
		func(string) (SelectorMap, error) { called = true; return nil, nil },
		nil, nil,
	)

	_, err := c.Collect("linux-64")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestNewFieldDescriptor(t *testing.T) {
	fd := NewFieldDescriptor("specs", "no", []string{"list", " string ", ""}, "  Packages.\n")
	assert.Equal(t, "list, string", fd.Type)
	assert.Equal(t, "s", fd.TypeSuffix)
	assert.Equal(t, "  Packages.\n", fd.Description)

	fd = NewFieldDescriptor("name", "yes", []string{"string"}, "Name.")
	assert.Equal(t, "string", fd.Type)
	assert.Empty(t, fd.TypeSuffix)
}

func TestSelectorMapKeys(t *testing.T) {
	m := SelectorMap{"win": false, "linux": true, "osx": false, "aarch64": true}
	assert.Equal(t, []string{"aarch64", "linux", "osx", "win"}, m.Keys())
	assert.Empty(t, SelectorMap(nil).Keys())
}
