// Package protocol defines the TCP wire protocol spoken between the bridge and
// the command server embedded in the host application.
//
// Every message is a single JSON object. Objects are self-delimiting, so a
// receiver knows it holds one complete message as soon as the decoder has
// consumed a full value; it never depends on the peer closing the connection.
// Senders terminate each object with a newline which keeps the stream readable
// with line oriented tools.
//
//	-> {"type":"create_node","params":{"node_type":"geo","name":"box1"}}
//	<- {"status":"ok","result":{"id":"box1"}}
//
// Numbers are decoded as json.Number so that a Command survives an
// encode/decode cycle without precision loss.
package protocol
