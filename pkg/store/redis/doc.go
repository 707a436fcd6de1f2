// Package redis implements the user database on a Redis server using the
// key layout shared with other TURN tooling:
//
//	turn/realm/<realm>/user/<name>/key     string, hex key
//	turn/realm/<realm>/secret              set of shared secrets
//	turn/realm/<realm>/<option>            string, numeric realm option
//	turn/realm/<realm>/allowed-peer-ip     set of ranges
//	turn/realm/<realm>/denied-peer-ip      set of ranges
//	turn/origin/<origin>                   string, realm
//	turn/oauth/kid/<kid>                   hash
//	turn/admin_user/<name>                 hash
//
// Redis has no schema, so InitSchema does nothing. Listings scan the
// keyspace and sort in memory.
package redis
