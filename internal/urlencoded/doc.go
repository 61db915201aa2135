// Package urlencoded decodes application/x-www-form-urlencoded bodies into
// generic documents.
//
// Two modes exist. Simple mode keeps every key literal and only collects
// repeated keys into arrays. Extended mode interprets bracket notation:
//
//	a[b][c]=1        → {"a": {"b": {"c": "1"}}}
//	a[]=1&a[]=2      → {"a": ["1", "2"]}
//	a[1]=y&a[0]=x    → {"a": ["x", "y"]}
//	a[25]=x          → {"a": {"25": "x"}}     (index above ArrayLimit)
//
// Arrays are returned as []any, objects as map[string]any and leaves as
// string. A key that collides with an existing leaf turns it into an array.
package urlencoded
