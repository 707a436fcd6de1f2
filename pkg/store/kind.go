package store

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -text -yaml -output kind.gen.go

// Kind names a backend engine. KindUnknown marks a store that failed to
// open.
type Kind int

const (
	KindUnknown Kind = iota
	KindSqlite
	KindPostgresql
	KindMysql
	KindRedis
)
