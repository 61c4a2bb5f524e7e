// Command carrel manages study workspaces from the terminal: files and
// folders, open tabs, flashcard decks, and the workspace registry, all
// persisted in a single local database.
package main
