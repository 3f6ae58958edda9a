/*
Package http provides the HTML handlers of the todo lists server.

Every handler works on the session attached by middleware.Session. Mutations
follow post/redirect/get: success stores a flash on the session and answers
303 See Other; a rejected name re-renders the originating form with 422 and
the message; an unknown list or todo id renders a 404 page.

Pages are html/template files embedded in the binary (see LoadTemplates).
Lists and todos are shown incomplete first, each keeping insertion order.

Routes:

	GET  /                                      -> /lists
	GET  /lists                                 all lists
	GET  /lists/new                             new list form
	POST /lists                                 create list
	GET  /lists/:id                             one list
	GET  /lists/:id/edit                        rename form
	POST /lists/:id                             rename list
	POST /lists/:id/destroy                     delete list
	POST /lists/:id/todos                       add todo
	POST /lists/:id/todos/:todo_id              set completion
	POST /lists/:id/todos/:todo_id/destroy      delete todo
	POST /lists/:id/complete_all                complete every todo
	GET  /api/export?format=json|yaml|toml      download lists
	GET  /health                                liveness
*/
package http
