package signal

// Classification is a model's structured reading of a message. The jsonschema
// tags describe the shape the model is asked to reply with.
type Classification struct {
	SentimentScore     int      `json:"sentimentScore" jsonschema:"required,minimum=-100,maximum=100,description=Overall sentiment from -100 (very negative) to 100 (very positive)"`
	DistressLevel      int      `json:"distressLevel" jsonschema:"required,minimum=0,maximum=10,description=Emotional distress from 0 (none) to 10 (severe)"`
	IsUrgent           bool     `json:"isUrgent" jsonschema:"required,description=True when the writer may need immediate support"`
	Topics             []string `json:"topics" jsonschema:"required,description=Short topic tags"`
	SuggestedResources []string `json:"suggestedResources" jsonschema:"required,description=Support resources worth suggesting"`
}
