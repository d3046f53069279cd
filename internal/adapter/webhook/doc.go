// Package webhook adapts Twitter's Account Activity DM webhook to the
// bot framework's normalized message contract.
//
// Four responsibilities, all within one translation boundary: answering CRC
// challenges, translating inbound DM events, suppressing self-echo events,
// and translating plus submitting outbound messages. No state survives a
// request.
package webhook
