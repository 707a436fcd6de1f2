// Package gorm implements the user database on PostgreSQL and MySQL using
// GORM.
//
// PostgreSQL is opened through lib/pq and accepts either a URL or a
// key=value connection string. MySQL takes a go-sql-driver DSN:
//
//	turn:secret@tcp(127.0.0.1:3306)/coturn?parseTime=true
package gorm
