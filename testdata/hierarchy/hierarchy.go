package hierarchy

import "sync"

type Org struct {
	ID string
}

type UserModel struct {
	Name string
}

// Target is the generic root whose parameters gen-bind resolves.
type Target[FirstSlot, SecondSlot any] struct {
	First  FirstSlot
	Second SecondSlot
}

type Mid[K, M any] struct {
	Target[K, string]
	Model M
}

type Swap[X, Y any] struct {
	Target[Y, X]
}

//gen-bind:leaf
type Leaf struct {
	Mid[Org, UserModel]
}

//gen-bind:leaf
type PtrLeaf struct {
	*Mid[*Org, []UserModel]
}

//gen-bind:leaf
type Swapped struct {
	Swap[int, Org]
}

// Partial never fixes the first slot.
//
//gen-bind:leaf
type Partial[K any] struct {
	Mid[K, int]
}

//gen-bind:leaf
type Locked struct {
	sync.Mutex
	Mid[Org, int]
}

//gen-bind:leaf
type Other struct {
	Name string
}

type Alias = Leaf
