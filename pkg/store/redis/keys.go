package redis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/doodlesbykumbi/relaydb/pkg/model"
)

const (
	realmPrefix  = "turn/realm/"
	originPrefix = "turn/origin/"
	oauthPrefix  = "turn/oauth/kid/"
	adminPrefix  = "turn/admin_user/"
)

func userKey(realm, name string) string {
	return realmPrefix + realm + "/user/" + name + "/key"
}

func secretKey(realm string) string {
	return realmPrefix + realm + "/secret"
}

func optionKey(realm, opt string) string {
	return realmPrefix + realm + "/" + opt
}

func ipKey(kind model.IPKind, realm string) string {
	return realmPrefix + realm + "/" + kind.String() + "-peer-ip"
}

func originKey(origin string) string {
	return originPrefix + origin
}

func oauthKey(kid string) string {
	return oauthPrefix + kid
}

func adminKey(name string) string {
	return adminPrefix + name
}

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// realmPattern returns the scan pattern for suffix under realm, or under
// every realm when realm is empty. Glob characters in realm match
// literally.
func realmPattern(realm, suffix string) string {
	if realm == "" {
		return realmPrefix + "*/" + suffix
	}
	return realmPrefix + globEscaper.Replace(realm) + "/" + suffix
}

// inRealm reports whether a row of realm r belongs to a listing filtered
// by filter.
func inRealm(filter, r string) bool {
	return filter == "" || filter == r
}

// realmPath splits a turn/realm/... key into the realm and the rest.
func realmPath(key string) (realm, rest string, ok bool) {
	if !strings.HasPrefix(key, realmPrefix) {
		return "", "", false
	}
	return strings.Cut(strings.TrimPrefix(key, realmPrefix), "/")
}

// parseUserKey returns the realm and user of a user key.
func parseUserKey(key string) (model.Credential, bool) {
	realm, rest, ok := realmPath(key)
	if !ok || !strings.HasPrefix(rest, "user/") || !strings.HasSuffix(rest, "/key") {
		return model.Credential{}, false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(rest, "user/"), "/key")
	if name == "" {
		return model.Credential{}, false
	}
	return model.Credential{Realm: realm, Name: name}, true
}

// parseOptionKey returns the realm and option name of an option key. Keys
// holding secrets, users or peer lists are not options.
func parseOptionKey(key string) (realm, opt string, ok bool) {
	realm, rest, ok := realmPath(key)
	if !ok || rest == "" || strings.Contains(rest, "/") || rest == "secret" || strings.HasSuffix(rest, "-peer-ip") {
		return "", "", false
	}
	return realm, rest, true
}

func oauthFields(k model.OAuthKey) map[string]interface{} {
	return map[string]interface{}{
		"ikm_key":   k.IKMKey,
		"timestamp": k.Timestamp,
		"lifetime":  k.Lifetime,
		"as_rs_alg": k.AsRsAlg,
		"realm":     k.Realm,
	}
}

func parseOAuthKey(kid string, fields map[string]string) (model.OAuthKey, error) {
	k := model.OAuthKey{
		KID:     kid,
		IKMKey:  fields["ikm_key"],
		AsRsAlg: fields["as_rs_alg"],
		Realm:   fields["realm"],
	}
	if v := fields["timestamp"]; v != "" {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return k, fmt.Errorf("oauth key %s: timestamp: %w", kid, err)
		}
		k.Timestamp = ts
	}
	if v := fields["lifetime"]; v != "" {
		lt, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return k, fmt.Errorf("oauth key %s: lifetime: %w", kid, err)
		}
		k.Lifetime = int32(lt)
	}
	return k, nil
}

// parseLocation accepts a redis:// URL or a space separated key=value
// list with host (or ip), port, dbname (or database) and password.
func parseLocation(location string) (*redis.Options, error) {
	if strings.Contains(location, "://") {
		return redis.ParseURL(location)
	}

	host, port := "127.0.0.1", "6379"
	opts := &redis.Options{}
	for _, field := range strings.Fields(location) {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("malformed redis location field %q", field)
		}
		switch strings.ToLower(k) {
		case "host", "ip":
			host = v
		case "port":
			port = v
		case "dbname", "database", "db":
			db, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("redis database %q: %w", v, err)
			}
			opts.DB = db
		case "password":
			opts.Password = v
		case "user", "username":
			opts.Username = v
		}
	}
	opts.Addr = host + ":" + port
	return opts, nil
}
