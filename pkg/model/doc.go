// Package model defines the user database records of the relay server.
//
// Each record maps 1:1 to a table of the user database. The GORM tags
// describe the relational schema; the sqlite and redis backends use the
// same names.
//
// # Tables
//
//   - turnusers_lt: long-term credentials, key (realm, name)
//   - turn_secret: shared secrets, key (realm, value)
//   - oauth_key: OAuth keys, key kid
//   - admin_user: administrators, key name
//   - allowed_peer_ip, denied_peer_ip: peer IP ranges, key (realm, ip_range)
//   - turn_realm_option: realm options, key (realm, opt)
//   - turn_origin_to_realm: origin routing, key origin
//
// Every record renders itself with String in the form the admin tool prints
// listings.
package model
