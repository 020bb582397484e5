package graphql

import (
	"github.com/graphql-go/graphql"

	"feedblog/internal/apperr"
	"feedblog/internal/middleware"
	"feedblog/internal/models"
	"feedblog/internal/service"
	"feedblog/internal/validation"
)

// resolver holds the services the schema closes over. Every operation here
// mirrors a REST route; authentication is enforced per-resolver because the
// HTTP gate runs in soft mode for /graphql.
type resolver struct {
	auth service.AuthService
	feed service.FeedService
}

func requireIdentity(p graphql.ResolveParams) (*service.Identity, error) {
	identity, ok := middleware.IdentityFrom(p.Context)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated.")
	}
	return identity, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	value, _ := p.Args[name].(string)
	return value
}

func NewSchema(services *service.Service) (graphql.Schema, error) {
	r := &resolver{auth: services.Auth, feed: services.Feed}

	creatorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Creator",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFrom(p.Source).CreatorID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFrom(p.Source).CreatorName, nil
				},
			},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postFrom(p.Source).PostID, nil
				},
			},
			"title":    &graphql.Field{Type: graphql.String},
			"content":  &graphql.Field{Type: graphql.String},
			"imageUrl": &graphql.Field{Type: graphql.String},
			"creator": &graphql.Field{
				Type: creatorType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					// The creator fields live on the post row (join on read).
					return p.Source, nil
				},
			},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userFrom(p.Source).UserID, nil
				},
			},
			"name":   &graphql.Field{Type: graphql.String},
			"email":  &graphql.Field{Type: graphql.String},
			"status": &graphql.Field{Type: graphql.String},
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.String},
			"userId": &graphql.Field{Type: graphql.String},
		},
	})

	postDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostData",
		Fields: graphql.Fields{
			"posts":      &graphql.Field{Type: graphql.NewList(postType)},
			"totalItems": &graphql.Field{Type: graphql.Int},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authDataType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"posts": &graphql.Field{
				Type: postDataType,
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: r.posts,
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.post,
			},
			"user": &graphql.Field{
				Type:    userType,
				Resolve: r.user,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: r.createUser,
			},
			"createPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.createPost,
			},
			"updatePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.updatePost,
			},
			"deletePost": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.deletePost,
			},
			"updateStatus": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.updateStatus,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func postFrom(source interface{}) *models.Post {
	switch post := source.(type) {
	case *models.Post:
		return post
	case models.Post:
		return &post
	default:
		return &models.Post{}
	}
}

func userFrom(source interface{}) *models.User {
	switch user := source.(type) {
	case *models.User:
		return user
	case models.User:
		return &user
	default:
		return &models.User{}
	}
}

func postInputFrom(p graphql.ResolveParams) (validation.PostInput, string) {
	input, _ := p.Args["postInput"].(map[string]interface{})
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)
	imageURL, _ := input["imageUrl"].(string)
	return validation.PostInput{Title: title, Content: content}, imageURL
}

func (r *resolver) login(p graphql.ResolveParams) (interface{}, error) {
	token, userID, err := r.auth.Login(p.Context, validation.LoginInput{
		Email:    stringArg(p, "email"),
		Password: stringArg(p, "password"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token": token, "userId": userID}, nil
}

func (r *resolver) posts(p graphql.ResolveParams) (interface{}, error) {
	page, _ := p.Args["page"].(int)

	posts, total, err := r.feed.ListPosts(p.Context, page)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"posts": posts, "totalItems": total}, nil
}

func (r *resolver) post(p graphql.ResolveParams) (interface{}, error) {
	return r.feed.GetPost(p.Context, stringArg(p, "id"))
}

func (r *resolver) user(p graphql.ResolveParams) (interface{}, error) {
	identity, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}

	status, err := r.auth.GetStatus(p.Context, identity.UserID)
	if err != nil {
		return nil, err
	}

	return &models.User{UserID: identity.UserID, Email: identity.Email, Status: status}, nil
}

func (r *resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userInput"].(map[string]interface{})
	email, _ := input["email"].(string)
	name, _ := input["name"].(string)
	password, _ := input["password"].(string)

	return r.auth.Signup(p.Context, validation.SignupInput{
		Email:    email,
		Name:     name,
		Password: password,
	})
}

func (r *resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	identity, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}

	in, imageURL := postInputFrom(p)
	return r.feed.CreatePostFromURL(p.Context, identity.UserID, in, imageURL)
}

func (r *resolver) updatePost(p graphql.ResolveParams) (interface{}, error) {
	identity, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}

	in, imageURL := postInputFrom(p)
	return r.feed.UpdatePostFromURL(p.Context, identity.UserID, stringArg(p, "id"), in, imageURL)
}

func (r *resolver) deletePost(p graphql.ResolveParams) (interface{}, error) {
	identity, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}

	if err := r.feed.DeletePost(p.Context, identity.UserID, stringArg(p, "id")); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *resolver) updateStatus(p graphql.ResolveParams) (interface{}, error) {
	identity, err := requireIdentity(p)
	if err != nil {
		return nil, err
	}

	status, err := r.auth.UpdateStatus(p.Context, identity.UserID, validation.StatusInput{
		Status: stringArg(p, "status"),
	})
	if err != nil {
		return nil, err
	}

	return &models.User{UserID: identity.UserID, Email: identity.Email, Status: status}, nil
}
