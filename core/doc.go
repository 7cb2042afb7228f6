// Package core defines the shared value types exchanged between the
// taleweaver components: conversation messages, retrieved corpus chunks,
// chat requests and the assembled multimodal result. It carries no behavior
// beyond defensive copying so every other package can depend on it without
// cycles.
package core
