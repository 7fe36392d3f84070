// Package dropdeck tracks a personal participation in airdrop-style crypto
// projects. It is local-first: all the data lives in a durable key-value
// store owned by the user.
//
// The core functionalities include:
//   - Project Catalog: a fixed catalog of projects that can be searched,
//     joined, left and marked as favorite.
//   - Tasks: to-do items attached to joined projects. Leaving a project
//     deletes its tasks, and every task is deleted at the start of a new
//     calendar day (the daily reset).
//   - Ledger: investments and earnings, with exact decimal amounts.
//   - Statistics: totals, task completion rate, ROI, monthly aggregates and
//     funding leaderboard, always recomputed from the collections.
//   - News: a static feed of articles, filtered by tag.
//
// State is the single owner of these collections. It is created by Open from
// a store.Store, and every mutation is written back to the store before it
// returns.
//
// This package serves as the foundational logic for the `dropdeck`
// command-line tool.
package dropdeck
