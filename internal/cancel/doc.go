package cancel

// Package cancel implements a group-scoped cancellation registry. Each named
// group holds at most one live token at a time; issuing a new token for a
// group atomically cancels the previous one. Tokens wrap context.Context so
// they plug directly into network requests and timers. Cancellation is always
// cooperative and silent: holders check the token at suspension points and
// stop without surfacing an error.
