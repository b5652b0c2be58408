// Package schedule scrapes the league schedule endpoint and flattens it into
// game records.
//
// A scrape splits the requested date range into fixed-size windows
// (ChunkDateRange), fetches one schedule page per window (Fetcher), and
// reshapes the nested response into records while applying the completion and
// game-type filters (Normalize). When only game ids are known, InferDateRange
// derives the range to scrape from the seasons encoded in the ids.
//
// Retrying, caching and rate limiting are the page fetcher's business; this
// package treats every fetch failure as fatal to the call.
package schedule
