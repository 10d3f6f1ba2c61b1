package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHref(t *testing.T) {
	d := Department{DepartmentID: 1}
	assert.Equal(t, "/store/departments/1", d.ComputeHref())

	a := Aisle{AisleID: 101, DepartmentID: 1}
	assert.Equal(t, "/store/departments/1/aisles/101", a.ComputeHref())

	p := Product{ProductID: 1001}
	assert.Equal(t, "/store/items/item1001", p.ComputeHref())
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 200},
		{ErrNotFound, 404},
		{fmt.Errorf("%w: department 7", ErrNotFound), 404},
		{ErrConflict, 409},
		{fmt.Errorf("%w: product 9", ErrConflict), 409},
		{ErrBadReference, 422},
		{ErrValidation, 422},
		{errors.New("disk on fire"), 500},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusFor(c.err), "error %v", c.err)
	}
}
