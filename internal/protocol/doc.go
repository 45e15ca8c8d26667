// Package protocol holds the frames exchanged with the checkers server.
//
// Every frame is a JSON text message: {"event": "<name>", "data": <payload>}.
//
// Client -> Server
// join-game:
//
//	data: string // game id
//
// move-piece:
//
//	selectedPiece: { i: number, j: number }
//	destination:   { i: number, j: number }
//
// leave-game: {}
//
// create-game:
//
//	data: string // game name
//
// chat-message:
//
//	data: string
//
// Server -> Client
// games:
//
//	data: Game[] // every open game, server order
//	Game: { id, name, board, chat: (string | {from, message})[] }
//
// your-game-created:
//
//	data: string // id of the game this client just created
//
// color:
//
//	data: "red" | "black"
//
// end-game: {} // opponent left
//
// winner:
//
//	data: string // winner name
//
// disconnect is never sent on the wire; the client raises it locally when the
// socket goes away.
package protocol
