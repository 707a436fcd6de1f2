// Package server provides the status API of a running relay.
//
// It exposes the live realm table, the reload status and a way to request
// a reload. Routing uses gorilla/mux and requests are logged with
// gorilla/handlers.
//
// # Endpoints
//
//   - GET  /                        - user database kind and health
//   - GET  /realms                  - live realms and origins
//   - GET  /realms/{realm}/options  - stored options of one realm
//   - GET  /origins/{origin}        - realm governing an origin
//   - POST /reload                  - reload realms and wait for the result
package server
