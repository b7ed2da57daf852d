package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/donk/internal/core/domain"
)

func TestBreadcrumb_String(t *testing.T) {
	crumb := domain.NewBreadcrumb("ci").Named("test").Inline("setup")
	assert.Equal(t, "ci>test<setup", crumb.String())
	assert.False(t, crumb.IsZero())
}

func TestBreadcrumb_IsImmutable(t *testing.T) {
	root := domain.NewBreadcrumb("ci")
	named := root.Named("a")
	inline := root.Inline("b")

	assert.Equal(t, "ci", root.String())
	assert.Equal(t, "ci>a", named.String())
	assert.Equal(t, "ci<b", inline.String())
}

func TestBreadcrumb_ExtendZero(t *testing.T) {
	var zero domain.Breadcrumb
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())

	crumb := zero.Named("build")
	assert.Equal(t, "build", crumb.String())
	assert.Equal(t, domain.NewBreadcrumb("build"), crumb)
}

func TestParseBreadcrumb(t *testing.T) {
	for _, s := range []string{"build", "ci>test", "ci>test<setup", "a<b<c>d"} {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, s, domain.ParseBreadcrumb(s).String())
		})
	}

	t.Run("segments", func(t *testing.T) {
		want := domain.NewBreadcrumb("ci").Named("test").Inline("setup")
		assert.Equal(t, want, domain.ParseBreadcrumb("ci>test<setup"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, domain.ParseBreadcrumb("").IsZero())
	})
}
