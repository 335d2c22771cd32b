package service

import "sync"

// keyedMutex provides one mutex per key, so operations on different keys
// (different users, different emails) never contend while operations on the
// same key are fully serialized.
//
// Mutexes are never evicted; the key space here is bounded by the number of
// users seen by one process, which is acceptable for this service's scale.
type keyedMutex struct {
	mus sync.Map // string -> *sync.Mutex
}

// Lock acquires the mutex for key and returns the corresponding unlock
// function, intended to be deferred by the caller.
func (k *keyedMutex) Lock(key string) func() {
	v, _ := k.mus.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
