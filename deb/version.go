package deb

import (
	"strconv"
	"strings"
)

// BumpVersion returns a version that sorts right after v by Debian rules,
// by bumping its revision:
//
//  1. Without a revision, "-1" is appended.
//  2. A numeric revision is incremented: "1.0-9" becomes "1.0-10".
//  3. Otherwise the last alphanumeric character of the revision moves up in
//     0-9, a-z: "1.0-1ubuntu9" becomes "1.0-1ubuntua". A final 'z' gets a
//     '0' after it: "1.0-1z" becomes "1.0-1z0".
func BumpVersion(v string) string {
	i := strings.LastIndexByte(v, '-')
	if i < 0 {
		return v + "-1"
	}
	prefix, rev := v[:i+1], []byte(v[i+1:])
	if len(rev) == 0 {
		return prefix + "1"
	}
	if n, err := strconv.Atoi(string(rev)); err == nil {
		return prefix + strconv.Itoa(n+1)
	}
	for j := len(rev) - 1; j >= 0; j-- {
		switch c := rev[j]; {
		case c == '9':
			rev[j] = 'a'
		case c == 'z':
			return prefix + string(rev[:j+1]) + "0" + string(rev[j+1:])
		case '0' <= c && c < '9', 'a' <= c && c < 'z':
			rev[j]++
		default:
			continue
		}
		return prefix + string(rev)
	}
	return v + "1"
}
