package server

import (
	"fmt"
	"net/http"
	"strings"
)

// Operation names, one per route. Every one of them must be routed.
const (
	opListBuckets  = "list_buckets"
	opCreateBucket = "create_bucket"
	opDeleteBucket = "delete_bucket"
	opListObjects  = "list_objects"
	opGetObject    = "get_object"
	opPutObject    = "put_object"
	opDeleteObject = "delete_object"
)

var requiredOps = []string{
	opListBuckets,
	opCreateBucket,
	opDeleteBucket,
	opListObjects,
	opGetObject,
	opPutObject,
	opDeleteObject,
}

// Path shapes. The object segment is the chi catch-all and may contain '/'.
const (
	rootPattern   = "/"
	bucketPattern = "/{bucket}/"
	objectPattern = "/{bucket}/*"
)

const (
	paramBucket = "bucket"
	paramObject = "*"
)

// route binds one method and path pattern to a handler. Params lists the
// path parameters the handler reads; each must be captured by Pattern.
type route struct {
	Op      string
	Method  string
	Pattern string
	Params  []string
	Handler http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{opListBuckets, http.MethodGet, rootPattern, nil, s.listBuckets},
		{opCreateBucket, http.MethodPut, bucketPattern, []string{paramBucket}, s.createBucket},
		{opListObjects, http.MethodGet, bucketPattern, []string{paramBucket}, s.listObjects},
		{opDeleteBucket, http.MethodDelete, bucketPattern, []string{paramBucket}, s.deleteBucket},
		{opGetObject, http.MethodGet, objectPattern, []string{paramBucket, paramObject}, s.getObject},
		{opPutObject, http.MethodPut, objectPattern, []string{paramBucket, paramObject}, s.putObject},
		{opDeleteObject, http.MethodDelete, objectPattern, []string{paramBucket, paramObject}, s.deleteObject},
	}
}

// checkRoutes fails when an operation is unrouted or routed twice, when a
// method/pattern pair is bound twice, or when a route reads a parameter its
// pattern does not capture.
func checkRoutes(routes []route) error {
	ops := make(map[string]bool, len(routes))
	bound := make(map[string]string, len(routes))

	for _, rt := range routes {
		if rt.Handler == nil {
			return fmt.Errorf("route %s: nil handler", rt.Op)
		}
		if ops[rt.Op] {
			return fmt.Errorf("route %s: operation routed twice", rt.Op)
		}
		ops[rt.Op] = true

		key := rt.Method + " " + rt.Pattern
		if prev, ok := bound[key]; ok {
			return fmt.Errorf("route %s: %s already bound to %s", rt.Op, key, prev)
		}
		bound[key] = rt.Op

		for _, p := range rt.Params {
			if !captures(rt.Pattern, p) {
				return fmt.Errorf("route %s: pattern %q does not capture %q", rt.Op, rt.Pattern, p)
			}
		}
	}

	for _, op := range requiredOps {
		if !ops[op] {
			return fmt.Errorf("operation %s has no route", op)
		}
	}
	return nil
}

func captures(pattern, param string) bool {
	if param == paramObject {
		return strings.HasSuffix(pattern, "/*")
	}
	return strings.Contains(pattern, "{"+param+"}")
}
