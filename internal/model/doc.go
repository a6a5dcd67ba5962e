package model

// Package model defines domain data structures used across the app: media
// items, thumbnail acquisition tasks, and status enums. Structures are designed
// for direct use by the layout, windowing, and acquisition services and for
// explicit state transitions.
