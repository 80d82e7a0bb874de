// Package palette implements a searchable list of actions, the keyboard
// counterpart to shortcuts: open it, type part of an action's name, pick a
// result.
//
// The palette holds its own query text and selection and is driven one key
// event at a time through HandleKey. Recently chosen actions are listed
// first for an empty query and ranked higher for a typed one.
package palette
