package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_Build(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *QueryBuilder
		want     string
		wantArgs []interface{}
	}{
		{
			name: "select only",
			build: func() *QueryBuilder {
				return NewQueryBuilder("SELECT id FROM events")
			},
			want:     "SELECT id FROM events;",
			wantArgs: nil,
		},
		{
			name: "first filter opens WHERE",
			build: func() *QueryBuilder {
				qb := NewQueryBuilder("SELECT id FROM events")
				qb.AddFilter("sport_id = ?", 3)
				return qb
			},
			want:     "SELECT id FROM events WHERE sport_id = $1;",
			wantArgs: []interface{}{3},
		},
		{
			name: "later filters join with AND",
			build: func() *QueryBuilder {
				qb := NewQueryBuilder("SELECT id FROM events")
				qb.AddFilter("sport_id = ?", 3)
				qb.AddFilter("location = ?", "Almagro")
				qb.AddFilter("schedule >= CURRENT_TIMESTAMP")
				return qb
			},
			want:     "SELECT id FROM events WHERE sport_id = $1 AND location = $2 AND schedule >= CURRENT_TIMESTAMP;",
			wantArgs: []interface{}{3, "Almagro"},
		},
		{
			name: "group by and order by",
			build: func() *QueryBuilder {
				qb := NewQueryBuilder("SELECT id, COUNT(*) FROM events")
				qb.AddGroupBy("events.id")
				qb.AddGroupBy("users.id")
				qb.AddOrderBy("events.schedule ASC")
				return qb
			},
			want:     "SELECT id, COUNT(*) FROM events GROUP BY events.id , users.id ORDER BY events.schedule ASC;",
			wantArgs: nil,
		},
		{
			name: "pagination offset is page times limit",
			build: func() *QueryBuilder {
				qb := NewQueryBuilder("SELECT id FROM events")
				qb.AddPagination(2, 20)
				return qb
			},
			want:     "SELECT id FROM events LIMIT $1 OFFSET $2;",
			wantArgs: []interface{}{20, 40},
		},
		{
			name: "select clause placeholders bind before filters",
			build: func() *QueryBuilder {
				qb := NewQueryBuilder("SELECT id, aux.flag FROM events JOIN aux ON aux.user_id = ?", 5)
				qb.AddFilter("sport_id = ?", 3)
				return qb
			},
			want:     "SELECT id, aux.flag FROM events JOIN aux ON aux.user_id = $1 WHERE sport_id = $2;",
			wantArgs: []interface{}{5, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := tt.build()
			require.Equal(t, tt.want, qb.Build())
			require.Equal(t, tt.wantArgs, qb.Args())
		})
	}
}

func TestQueryBuilder_ArgsFollowAppendOrder(t *testing.T) {
	qb := NewQueryBuilder("SELECT id FROM events")
	qb.AddFilter("sport_id IN (?,?)", 1, 2)
	qb.AddFilter("expertise = ?", 4)
	qb.AddPagination(0, 10)

	require.Equal(t, "SELECT id FROM events WHERE sport_id IN ($1,$2) AND expertise = $3 LIMIT $4 OFFSET $5;", qb.Build())
	require.Equal(t, []interface{}{1, 2, 4, 10, 0}, qb.Args())
}
