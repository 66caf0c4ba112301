package dto

import "encoding/xml"

type TwiMLResponse struct {
	XMLName xml.Name      `xml:"Response"`
	Message *TwiMLMessage `xml:"Message,omitempty"`
}

type TwiMLMessage struct {
	Body string `xml:",chardata"`
}

// NewTwiML builds the markup Twilio expects as the webhook answer. An empty reply
// yields an empty <Response/>, which acknowledges without sending anything.
func NewTwiML(reply string) TwiMLResponse {
	if reply == "" {
		return TwiMLResponse{}
	}
	return TwiMLResponse{Message: &TwiMLMessage{Body: reply}}
}

// Render encodes the response with the XML declaration.
func (r TwiMLResponse) Render() ([]byte, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
