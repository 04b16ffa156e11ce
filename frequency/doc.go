// Package frequency counts the words served by the gateway and answers
// top-N queries over those counts. A Tracker is safe for concurrent use.
package frequency
