package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(NullValue))
	assert.False(t, IsNull(""))
	assert.False(t, IsNull("NULL"))
	assert.False(t, IsNull("0"))
}

func TestRecordSetColumnIndex(t *testing.T) {
	rs := &RecordSet{
		ColumnNames: []string{"id", "name", "uri"},
		Records: []Record{
			{Values: []string{"1", "model", NullValue}},
		},
	}

	assert.Equal(t, 0, rs.ColumnIndex("id"))
	assert.Equal(t, 2, rs.ColumnIndex("uri"))
	assert.Equal(t, -1, rs.ColumnIndex("missing"))

	// Cell access through the index round-trips the sentinel.
	assert.True(t, IsNull(rs.Records[0].Values[rs.ColumnIndex("uri")]))
}
