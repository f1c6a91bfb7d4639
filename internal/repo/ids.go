package repo

import "fmt"

// NextID builds a sequential display id from a prefix and the number of
// entities already in that prefix's scope, zero padded to three digits:
// NextID("V", 2) yields "V003".
func NextID(prefix string, count int) string {
	return fmt.Sprintf("%s%03d", prefix, count+1)
}
