// Package handlers defines the user-facing error texts used across routes.
//
// HTML routes send these as plain text, JSON routes wrap them in
// ErrorResponse. Texts are Brazilian Portuguese to match the views.
package handlers

const (
	MsgFriendNotFound = "Amigo não encontrado."
	MsgGameNotFound   = "Jogo não encontrado."
	MsgLoanNotFound   = "Empréstimo não encontrado."

	MsgInvalidID        = "Identificador inválido."
	MsgInvalidInput     = "Dados inválidos: preencha todos os campos obrigatórios."
	MsgInvalidDate      = "Data inválida: use o formato AAAA-MM-DD."
	MsgInvalidSort      = "Ordenação inválida."
	MsgUnknownReference = "Amigo ou jogo informado não existe."

	MsgFriendInUse = "Amigo possui jogos ou empréstimos e não pode ser excluído."
	MsgGameInUse   = "Jogo possui empréstimos e não pode ser excluído."

	MsgInternal         = "Erro interno do servidor"
	MsgListFriends      = "Erro ao buscar amigos"
	MsgListGames        = "Erro ao buscar jogos"
	MsgListLoans        = "Erro ao buscar emprestimos"
	MsgPDF              = "Erro ao gerar PDF"
	MsgRouteNotFound    = "Página não encontrada"
	MsgMethodNotAllowed = "Método não permitido"
	MsgUnavailable      = "Banco de dados indisponível"
)
