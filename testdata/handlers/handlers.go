package handlers

import "fmt"

type Request struct{}

type Response struct{}

type Handler[Req, Resp any] interface {
	Handle(Req) Resp
}

type Typed[K, T any] interface {
	fmt.Stringer
	Handler[K, T]
	Kind() K
}

type Routed[T, K, M any] interface {
	fmt.Stringer
	Typed[K, string]
	Route(T) M
}

type Base struct {
	Name string
}

// RouteImpl reaches Handler through two interface hops.
//
//gen-bind:leaf
type RouteImpl struct {
	Base
	Routed[int, Request, bool]
}

//gen-bind:leaf
type DirectImpl struct {
	Base
	Handler[Request, Response]
}

type plainBase struct {
	Handler[*Request, error]
}

//gen-bind:leaf
type Inherited struct {
	plainBase
}

//gen-bind:leaf
type Unrelated struct {
	Base
	fmt.Stringer
}
