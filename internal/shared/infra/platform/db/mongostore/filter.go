package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// ToMongoFilter traduce el árbol de predicados a un filtro de MongoDB.
// Los operadores negativos excluyen también los documentos con el campo nulo o ausente,
// igual que hace SQL con NULL.
func ToMongoFilter(criteria sharedDomain.Criteria) bson.D {
	switch c := criteria.(type) {
	case nil:
		return bson.D{}
	case sharedDomain.CompositeCriteria:
		if c.IsEmpty() {
			return bson.D{}
		}
		if len(c.Criterias) == 1 {
			return ToMongoFilter(c.Criterias[0])
		}
		children := make(bson.A, 0, len(c.Criterias))
		for _, child := range c.Criterias {
			children = append(children, ToMongoFilter(child))
		}
		key := "$and"
		if c.Operator == sharedDomain.OpOr {
			key = "$or"
		}
		return bson.D{{Key: key, Value: children}}
	case sharedDomain.Criterion:
		return bson.D{{Key: c.Column, Value: condition(c)}}
	}
	return bson.D{}
}

func condition(c sharedDomain.Criterion) any {
	switch c.Op {
	case sharedDomain.OpEq:
		return bson.M{"$eq": c.Value}
	case sharedDomain.OpNe:
		return bson.M{"$nin": bson.A{c.Value, nil}}
	case sharedDomain.OpGt:
		return bson.M{"$gt": c.Value}
	case sharedDomain.OpGte:
		return bson.M{"$gte": c.Value}
	case sharedDomain.OpLt:
		return bson.M{"$lt": c.Value}
	case sharedDomain.OpLte:
		return bson.M{"$lte": c.Value}
	case sharedDomain.OpLike:
		pattern, _ := c.Value.(string)
		return bson.M{"$regex": sharedQuery.LikeRegex(pattern), "$options": "i"}
	case sharedDomain.OpNotLike:
		pattern, _ := c.Value.(string)
		return bson.M{"$ne": nil, "$not": primitive.Regex{Pattern: sharedQuery.LikeRegex(pattern), Options: "i"}}
	case sharedDomain.OpIn:
		values, _ := c.Value.([]any)
		return bson.M{"$in": bson.A(values)}
	case sharedDomain.OpNotIn:
		values, _ := c.Value.([]any)
		if len(values) == 0 {
			return bson.M{"$nin": bson.A{}}
		}
		nin := make(bson.A, 0, len(values)+1)
		nin = append(nin, values...)
		return bson.M{"$nin": append(nin, nil)}
	case sharedDomain.OpIsNull:
		return nil
	case sharedDomain.OpIsNotNull:
		return bson.M{"$ne": nil}
	case sharedDomain.OpBetween:
		bounds, _ := c.Value.([]any)
		if len(bounds) != 2 {
			return bson.M{"$in": bson.A{}}
		}
		return bson.M{"$gte": bounds[0], "$lte": bounds[1]}
	}
	return bson.M{"$eq": c.Value}
}

// ToMongoSort conserva el orden de las claves: primero los sorts y al final el desempate.
func ToMongoSort(orders []sharedQuery.Order) bson.D {
	sort := bson.D{}
	for _, o := range orders {
		dir := 1
		if o.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Column, Value: dir})
	}
	return sort
}

// FindOptions aplica orden y ventana del plan.
func FindOptions(plan sharedQuery.Plan) *options.FindOptions {
	page := plan.Pagination()
	opts := options.Find().SetSkip(int64(page.Offset)).SetLimit(int64(page.Limit))
	if len(plan.Orders) > 0 {
		opts.SetSort(ToMongoSort(plan.Orders))
	}
	return opts
}
