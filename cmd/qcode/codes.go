package qcode

// Entry is one reference line.
type Entry struct {
	Code    string `json:"code"`
	Meaning string `json:"meaning"`
	Usage   string `json:"usage,omitempty"`
}

var qCodes = []Entry{
	{"QRA", "Station name", "What is the name of your station?"},
	{"QRB", "Distance", "How far are you from my station?"},
	{"QRG", "Exact frequency", "What is my exact frequency?"},
	{"QRH", "Frequency varies", "Does my frequency vary?"},
	{"QRI", "Tone quality", "How is the tone of my transmission?"},
	{"QRK", "Signal readability", "What is the readability of my signals? (1-5)"},
	{"QRL", "Are you busy?", "Are you busy? / I am busy."},
	{"QRM", "Man-made interference", "Are you being interfered with?"},
	{"QRN", "Static / noise", "Are you troubled by static?"},
	{"QRO", "Increase power", "Shall I increase transmitter power?"},
	{"QRP", "Decrease power", "Shall I decrease transmitter power? (low-power ops)"},
	{"QRQ", "Send faster", "Shall I send faster?"},
	{"QRR", "Ready for automatic", "Are you ready for automatic operation?"},
	{"QRS", "Send slower", "Shall I send more slowly?"},
	{"QRT", "Stop sending", "Shall I cease transmission?"},
	{"QRU", "Nothing for you", "Have you anything for me? / Nothing for you."},
	{"QRV", "Ready", "Are you ready? / I am ready."},
	{"QRX", "Wait / stand by", "When will you call me again?"},
	{"QRZ", "Who is calling?", "Who is calling me?"},
	{"QSA", "Signal strength", "What is the strength of my signals? (1-5)"},
	{"QSB", "Signal fading", "Are my signals fading?"},
	{"QSD", "Defective keying", "Is my keying defective?"},
	{"QSK", "Break-in", "Can you hear me between your signals?"},
	{"QSL", "Acknowledge receipt", "Can you acknowledge receipt?"},
	{"QSM", "Repeat last message", "Shall I repeat the last message?"},
	{"QSO", "Contact / QSO", "Can you communicate with ... directly?"},
	{"QSP", "Relay to", "Will you relay to ...?"},
	{"QST", "General call", "General call preceding message to all amateurs."},
	{"QSX", "Listen on...", "Will you listen to ... on ... kHz?"},
	{"QSY", "Change frequency", "Shall I change to transmit on another frequency?"},
	{"QTH", "Location", "What is your location?"},
	{"QTR", "Time", "What is the correct time?"},
}

var abbreviations = []Entry{
	{Code: "73", Meaning: "Best regards"},
	{Code: "88", Meaning: "Love and kisses"},
	{Code: "AR", Meaning: "End of message"},
	{Code: "AS", Meaning: "Wait / stand by"},
	{Code: "BK", Meaning: "Break / invite any station to transmit"},
	{Code: "BT", Meaning: "Break (separator), equivalent to paragraph"},
	{Code: "CQ", Meaning: "General call to any station"},
	{Code: "CW", Meaning: "Continuous wave (Morse code mode)"},
	{Code: "DE", Meaning: "From (used between callsigns)"},
	{Code: "DR", Meaning: "Dear"},
	{Code: "DX", Meaning: "Long distance / rare station"},
	{Code: "ES", Meaning: "And"},
	{Code: "FB", Meaning: "Fine business, excellent!"},
	{Code: "GA", Meaning: "Good afternoon / go ahead"},
	{Code: "GE", Meaning: "Good evening"},
	{Code: "GM", Meaning: "Good morning"},
	{Code: "GN", Meaning: "Good night"},
	{Code: "GUD", Meaning: "Good"},
	{Code: "HI", Meaning: "Laughter (CW version of 'haha')"},
	{Code: "HR", Meaning: "Here / hear"},
	{Code: "HW", Meaning: "How? / How copy?"},
	{Code: "K", Meaning: "Invitation to transmit (any station)"},
	{Code: "KN", Meaning: "Invitation to transmit (specific station only)"},
	{Code: "NR", Meaning: "Number"},
	{Code: "OM", Meaning: "Old man (friendly term for any operator)"},
	{Code: "OPR", Meaning: "Operator"},
	{Code: "PSE", Meaning: "Please"},
	{Code: "R", Meaning: "Roger, received / understood"},
	{Code: "RIG", Meaning: "Radio equipment"},
	{Code: "RPT", Meaning: "Repeat"},
	{Code: "RST", Meaning: "Readability, Signal, Tone (signal report)"},
	{Code: "SK", Meaning: "End of contact (sign off)"},
	{Code: "SRI", Meaning: "Sorry"},
	{Code: "TMW", Meaning: "Tomorrow"},
	{Code: "TNX", Meaning: "Thanks"},
	{Code: "TU", Meaning: "Thank you"},
	{Code: "UR", Meaning: "Your / you are"},
	{Code: "VE", Meaning: "Understood (European)"},
	{Code: "VY", Meaning: "Very"},
	{Code: "WPM", Meaning: "Words per minute"},
	{Code: "XYL", Meaning: "Wife (ex-young lady)"},
	{Code: "YL", Meaning: "Young lady (any female operator)"},
}
