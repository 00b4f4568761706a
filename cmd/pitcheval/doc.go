// Command pitcheval scores a pitch deck and its recorded delivery against the
// five-criterion investor rubric without running the HTTP server.
package main
