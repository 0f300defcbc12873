package feed

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dvloznov/sms-tracker/internal/smsparser"
)

// Sink receives parsed transactions. The host application plugs in its save
// path here (e.g. posting the record to its backend).
type Sink func(ctx context.Context, tx *smsparser.ParsedTransaction) error

// ParseHandler builds the queue handler: it parses the job's raw message and
// forwards the record to the sink. Non-transactional messages (promos,
// delivery notices) are skipped before parsing. A device-assigned message id
// replaces the synthesized one, so re-reading the inbox stays idempotent.
func ParseHandler(log zerolog.Logger, sink Sink) Handler {
	return func(ctx context.Context, job *ParseJob) error {
		msg := job.Message

		if !smsparser.IsTransactional(msg.Body) {
			log.Debug().
				Str("job_id", job.JobID).
				Str("address", msg.Address).
				Msg("Skipping non-transactional message")
			return nil
		}

		tx, err := smsparser.Parse(msg.Body, msg.Address, msg.ReceivedAt)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Str("address", msg.Address).
				Msg("Parse failed")
			return err
		}
		if msg.ID != "" {
			tx.ID = msg.ID
		}
		job.Result = tx

		log.Info().
			Str("job_id", job.JobID).
			Str("tx_id", tx.ID).
			Str("type", string(tx.Type)).
			Str("category", string(tx.Category)).
			Msg("Parsed message")

		if sink != nil {
			return sink(ctx, tx)
		}
		return nil
	}
}

// ParseBatch parses a slice of raw messages synchronously and returns the
// records newest first. Messages rejected by the parser's input guard are
// dropped.
func ParseBatch(msgs []RawMessage) []*smsparser.ParsedTransaction {
	txs := make([]*smsparser.ParsedTransaction, 0, len(msgs))
	for _, msg := range msgs {
		tx, err := smsparser.Parse(msg.Body, msg.Address, msg.ReceivedAt)
		if err != nil {
			continue
		}
		if msg.ID != "" {
			tx.ID = msg.ID
		}
		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})

	return txs
}
