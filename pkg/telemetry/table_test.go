package telemetry

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBasics(t *testing.T) {
	tbl := NewTable("LogDate", "Bat")
	assert.True(t, tbl.Empty())
	assert.True(t, tbl.HasColumn("Bat"))
	assert.False(t, tbl.HasColumn("Acc"))

	tbl.Append(Row{"LogDate": String("01/01/2024 10:00:00"), "Bat": Number(3.7)})
	assert.Equal(t, 1, tbl.Len())
	assert.False(t, tbl.Empty())

	// absent cells read as null
	assert.True(t, tbl.Value(0, "Acc").IsNull())
}

func TestTableAddColumnIsIdempotent(t *testing.T) {
	tbl := NewTable("A")
	tbl.AddColumn("B")
	tbl.AddColumn("B")
	assert.Equal(t, []string{"A", "B"}, tbl.Columns())
}

func TestTableSelectProjectsAndOrders(t *testing.T) {
	tbl := NewTable("C", "A", "B")
	tbl.Append(Row{"A": Number(1), "B": Number(2), "C": Number(3)})

	out := tbl.Select("A", "Missing", "C")
	assert.Equal(t, []string{"A", "C"}, out.Columns())
	require.Equal(t, 1, out.Len())
	assert.True(t, out.Value(0, "A").Equal(Number(1)))
	assert.True(t, out.Value(0, "B").IsNull(), "cells outside the selection are dropped")
}

func TestTableCloneIsDeep(t *testing.T) {
	tbl := NewTable("A")
	tbl.Append(Row{"A": String("x")})

	cp := tbl.Clone()
	cp.Row(0)["A"] = String("mutated")

	assert.Equal(t, "x", tbl.Value(0, "A").String())
}

func TestTableFilter(t *testing.T) {
	tbl := NewTable("Bat")
	tbl.Append(Row{"Bat": Number(3.59)})
	tbl.Append(Row{"Bat": Number(3.70)})

	low := tbl.Filter(func(r Row) bool {
		f, ok := r["Bat"].Float()
		return ok && f < 3.60
	})
	assert.Equal(t, 1, low.Len())
	assert.Equal(t, tbl.Columns(), low.Columns())
}

func TestSortByTimestampDescendingDefault(t *testing.T) {
	at := func(h int) Value {
		return Time(utc.New(time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC)))
	}

	tbl := NewTable("LogDate", "n")
	tbl.Append(Row{"LogDate": at(8), "n": Number(1)})
	tbl.Append(Row{"LogDate": at(12), "n": Number(2)})
	tbl.Append(Row{"LogDate": Null(), "n": Number(3)})
	tbl.Append(Row{"LogDate": at(10), "n": Number(4)})

	sorted := SortByTimestamp(tbl, "LogDate", false)

	var order []float64
	for _, row := range sorted.Rows() {
		f, _ := row["n"].Float()
		order = append(order, f)
	}
	assert.Equal(t, []float64{2, 4, 1, 3}, order, "descending with nulls last")
}

func TestSortByTimestampParsesStringCells(t *testing.T) {
	tbl := NewTable("LogDate")
	tbl.Append(Row{"LogDate": String("01/01/2024 08:00:00")})
	tbl.Append(Row{"LogDate": String("garbage")})
	tbl.Append(Row{"LogDate": String("01/01/2024 12:00:00")})

	sorted := SortByTimestamp(tbl, "LogDate", true)

	assert.Equal(t, "01/01/2024 08:00:00", sorted.Value(0, "LogDate").String())
	assert.Equal(t, "01/01/2024 12:00:00", sorted.Value(1, "LogDate").String())
	assert.Equal(t, "garbage", sorted.Value(2, "LogDate").String(), "unparsable sorts last")
}

func TestSortByTimestampMissingColumnReturnsInput(t *testing.T) {
	tbl := NewTable("A")
	tbl.Append(Row{"A": Number(1)})

	sorted := SortByTimestamp(tbl, "LogDate", false)
	assert.Same(t, tbl, sorted, "missing column returns the input unchanged")
}

func TestSortByTimestampIsStable(t *testing.T) {
	same := Time(utc.New(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))

	tbl := NewTable("LogDate", "n")
	for i := 1; i <= 4; i++ {
		tbl.Append(Row{"LogDate": same, "n": Number(float64(i))})
	}

	sorted := SortByTimestamp(tbl, "LogDate", false)
	for i := 0; i < 4; i++ {
		f, _ := sorted.Value(i, "n").Float()
		assert.Equal(t, float64(i+1), f)
	}
}
