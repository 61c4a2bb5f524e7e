// Package study persists per-workspace flashcard decks.
//
// Each workspace owns at most one deck record, keyed "study_" plus the
// workspace id. Reads of a missing record return an empty default without
// writing; all writes replace the record wholesale.
package study
