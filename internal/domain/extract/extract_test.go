package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTicketText(t *testing.T) {
	text := "CRQ: 12345\nRagione Sociale: Acme Srl\nVia Roma 10, 00100 Roma"

	f := Extract(text)
	require.Equal(t, "12345", f.CRQ)
	require.Equal(t, "Acme Srl", f.RagioneSociale)
	require.Equal(t, "Via Roma 10", f.Via)
	require.Equal(t, "00100 Roma", f.Citta)
}

func TestExtractCRQVariants(t *testing.T) {
	cases := map[string]string{
		"CRQ000123456 in oggetto": "000123456",
		"Rif. CRQ-2024/001":       "CRQ-2024/001",
		"Riferimento: 998877":     "998877",
		"crq 445566 da lavorare":  "445566",
	}
	for text, want := range cases {
		f := Extract(text)
		require.Equal(t, want, f.CRQ, "input: %q", text)
	}
}

func TestExtractLabelSynonyms(t *testing.T) {
	text := "Cliente: Beta Spa\nOggetto: attivazione fibra\nContatto: Luigi Bianchi\nTelefono: 02 8765 4321"

	f := Extract(text)
	require.Equal(t, "Beta Spa", f.RagioneSociale)
	require.Equal(t, "attivazione fibra", f.Riepilogo)
	require.Equal(t, "Luigi Bianchi", f.Referente)
	require.Equal(t, "02 8765 4321", f.Tel)
}

func TestExtractViaWithLabelSeparator(t *testing.T) {
	// An explicit "Via:" label keeps only the value after it.
	f := Extract("Via: Corso Italia 5\nCittà: Milano")
	require.Equal(t, "Corso Italia 5", f.Via)
	require.Equal(t, "Milano", f.Citta)
}

func TestExtractViaLineKeepsStreetName(t *testing.T) {
	// "Via" leading a street name belongs to the address itself.
	f := Extract("Via Garibaldi 22\nCittà: Torino")
	require.Equal(t, "Via Garibaldi 22", f.Via)
	require.Equal(t, "Torino", f.Citta)
}

func TestExtractIndirizzoFallback(t *testing.T) {
	f := Extract("Indirizzo: Piazza Duomo 1, 20121 Milano")
	require.Equal(t, "Piazza Duomo 1", f.Via)
	require.Equal(t, "20121 Milano", f.Citta)
}

func TestExtractIndirizzoIgnoredWhenAddressPresent(t *testing.T) {
	f := Extract("Via: Corso Italia 5\nIndirizzo: Altro Posto 9")
	require.Equal(t, "Corso Italia 5", f.Via)
}

func TestExtractNoPostalCodeKeepsAddressWhole(t *testing.T) {
	f := Extract("Via Marconi 3, interno 2")
	require.Equal(t, "Via Marconi 3, interno 2", f.Via)
	require.Empty(t, f.Citta)
}

func TestExtractEmptyAndNoise(t *testing.T) {
	require.Equal(t, Fields{}, Extract(""))
	require.Equal(t, Fields{}, Extract("nessun campo utile qui\nsolo testo libero"))
}

func TestExtractTelLabelFallback(t *testing.T) {
	// "Cellulare" is only a label synonym, not part of the anchored regex.
	f := Extract("Cellulare: 333 1234567")
	require.Equal(t, "333 1234567", f.Tel)
}
