package ig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

func TestQueryParams_WithCSVFilter(t *testing.T) {
	t.Parallel()

	q := ig.NewQueryParams().WithCSVFilter("epics", []string{"CS.D.EURUSD.CFD.IP", "CS.D.GBPUSD.CFD.IP"})

	values := q.ToValues()
	assert.Equal(t, "CS.D.EURUSD.CFD.IP,CS.D.GBPUSD.CFD.IP", values.Get("epics"))
}

func TestQueryParams_WithFilter_Accumulates(t *testing.T) {
	t.Parallel()

	q := ig.NewQueryParams().WithFilter("tag", "a").WithFilter("tag", "b")

	assert.Equal(t, []string{"a", "b"}, q.ToValues()["tag"])
}

func TestQueryParams_ToValues_NilReceiver(t *testing.T) {
	t.Parallel()

	var q *ig.QueryParams

	assert.Empty(t, q.ToValues())
}
